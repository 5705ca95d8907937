// Package client provides a thin HTTP client that prepares requests
// eagerly and sends them lazily.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithBaseURL("https://api.example.com"),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// Any [Transport] can be injected with [WithTransport]; the default is an
// [HTTPTransport] over net/http.
//
// # Making Requests
//
// [Client.Get], [Client.Post] and [Client.PostFormData] validate their
// input and return a [deferred.Deferred]. Nothing is sent until it is
// activated:
//
//	d, err := c.Get("/users/1", nil)
//	if err != nil { ... } // caller error, nothing was sent
//	v, err := d.Await(ctx)
//
// Observers attached while a call is in flight share it:
//
//	a, b := d.Subscribe(ctx), d.Subscribe(ctx) // one request
//
// # Results
//
// A successful call resolves to the parsed JSON body, the raw body text
// when it is not JSON, or an empty object when there is no body. Use
// [Decode] or [As] to convert the payload into a concrete type.
//
// A failed call resolves to an [Error] holding a single message: the
// failure's own message, "<status> - <statusText>" for non-2xx responses,
// or "Server error".
package client
