package client_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/adamwoolhether/apiclient/client"
	"github.com/adamwoolhether/apiclient/client/form"
)

func ExampleClient_Get() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"name":"A"}`)
	}))
	defer ts.Close()

	c, err := client.Build(client.WithBaseURL(ts.URL))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	d, err := c.Get("/users/1", nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	v, err := d.Await(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(v.(map[string]any)["name"])
	// Output: A
}

func ExampleClient_Post() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c, err := client.Build(client.WithBaseURL(ts.URL))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	d, err := c.Post("/users", map[string]string{"name": "B"}, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, err = d.Await(context.Background())
	fmt.Println(err)
	// Output: 500 - Internal Server Error
}

func ExampleClient_PostFormData() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, "hello "+r.FormValue("name"))
	}))
	defer ts.Close()

	c, err := client.Build(client.WithBaseURL(ts.URL))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	data := form.New().
		Set("name", "alice").
		AddFile("avatar", "a.txt", "text/plain", strings.NewReader("hi"))

	d, err := c.PostFormData("/upload", data, nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	v, err := d.Await(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(v)
	// Output: hello alice
}

func ExampleAs() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":1,"name":"A"}`)
	}))
	defer ts.Close()

	c, err := client.Build(client.WithBaseURL(ts.URL))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	d, err := c.Get("/users/1", nil)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	u, err := client.As[user](d).Await(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%d %s\n", u.ID, u.Name)
	// Output: 1 A
}
