// Package tlq provides a typed Go client for the TLQ (Tiny Little Queue)
// HTTP API.
//
// Create a client with:
//
//	client, err := tlq.New()
//	if err != nil {
//	   panic(err)
//	}
//	defer client.Close()
//
// Configuration is read from the TLQ_HOST, TLQ_PORT, TLQ_TIMEOUT and
// TLQ_MAX_RETRIES environment variables, with explicit options taking
// precedence:
//
//	client, err := tlq.New(
//	   tlq.WithHost("queue.internal"),
//	   tlq.WithPort(1337),
//	   tlq.WithTimeout(5*time.Second),
//	   tlq.WithMaxRetries(3),
//	)
//
// Then use the client to work with the queue:
//
//	id, err := client.AddMessage(ctx, "hello")
//	msgs, err := client.GetMessages(ctx, 10)
//	err = client.DeleteMessages(ctx, id)
//
// Transient failures (connection errors, timeouts, 5xx responses) are
// retried with exponential backoff before being surfaced as a typed
// error; see ConnectionError, TimeoutError, ServerError and
// ValidationError for the failure taxonomy.
//
// A Client is not safe for concurrent use from multiple goroutines;
// create one client per worker instead.
package tlq
