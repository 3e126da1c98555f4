/*
Package observability provides Prometheus collectors for monitoring the
engine: form builds, bind outcomes and bind latency.
*/
package observability
