package apiclient_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/adamwoolhether/apiclient"
	"github.com/adamwoolhether/apiclient/client"
)

func ExampleNew() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"msg":"hello"}`)
	}))
	defer ts.Close()

	c, err := apiclient.New(client.WithBaseURL(ts.URL))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	d, err := c.Get("/greeting", nil)
	if err != nil {
		fmt.Println("request error:", err)
		return
	}

	// Both observers share one request.
	a := d.Subscribe(context.Background())
	b := d.Subscribe(context.Background())

	ra, rb := <-a, <-b
	if ra.Err != nil || rb.Err != nil {
		fmt.Println("do error:", ra.Err, rb.Err)
		return
	}

	fmt.Println(ra.Value.(map[string]any)["msg"], rb.Value.(map[string]any)["msg"])
	// Output: hello hello
}
