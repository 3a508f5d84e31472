// Package actions defines the semantic-actions contract: the callback
// surface through which parser.Parser reports a streaming parse.
// Implementations may be stateful (jsontree's DOM builder) or purely
// event-driven (jsonpath's path-subscription scanner).
package actions
