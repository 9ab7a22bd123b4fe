package newrelic

import (
	"context"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// InstrumentHTTPRequest wraps an outbound call in an external segment
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, do func() (*http.Response, error)) (*http.Response, error) {
	txn := FromContext(ctx)
	if txn == nil {
		return do()
	}

	segment := newrelic.StartExternalSegment(txn, req)
	defer segment.End()

	resp, err := do()
	if resp != nil {
		segment.Response = resp
	}
	return resp, err
}

// WithMessageSegment wraps a broker publish in a message producer segment
func WithMessageSegment(ctx context.Context, library, destination string, fn func() error) error {
	txn := FromContext(ctx)
	if txn == nil {
		return fn()
	}

	segment := &newrelic.MessageProducerSegment{
		StartTime:       txn.StartSegmentNow(),
		Library:         library,
		DestinationType: newrelic.MessageTopic,
		DestinationName: destination,
	}
	defer segment.End()

	return fn()
}
