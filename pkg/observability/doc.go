// Package observability records Core calls as Prometheus metrics and
// OpenTelemetry spans.
//
// The request pipeline reports each finished call through core.Observer;
// CoreObserver turns that report into a counter increment, a latency sample
// and a span carrying the call's real start and end times.
package observability
