// Package resilience provides the bulkhead pattern used to isolate
// transcription engine calls.
//
// Each websocket session processes its messages sequentially, but engine
// invocations from all sessions share one bulkhead so a burst of slow
// inferences cannot starve the process:
//
//	bh := resilience.NewBulkhead(resilience.BulkheadConfig{
//	    Name:          "engine",
//	    MaxConcurrent: 4,
//	    MaxWait:       30 * time.Second,
//	})
//	result, err := resilience.ExecuteWithResult(bh, ctx, func() (*transcription.Result, error) {
//	    return engine.Transcribe(ctx, req)
//	})
package resilience
