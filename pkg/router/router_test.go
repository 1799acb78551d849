package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aurigalabs/storefront/pkg/router"
)

func okHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body)) //nolint:errcheck
	}
}

func TestMethodRouting(t *testing.T) {
	r := router.New()
	r.Get("/things", "things.index", okHandler("index"))
	r.Post("/things", "things.create", okHandler("create"))
	r.Put("/things/{id}", "things.update", okHandler("update"))
	r.Patch("/things/{id}", "things.patch", okHandler("patch"))
	r.Delete("/things/{id}", "things.delete", okHandler("delete"))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	cases := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/things", "index"},
		{http.MethodPost, "/things", "create"},
		{http.MethodPut, "/things/1", "update"},
		{http.MethodPatch, "/things/1", "patch"},
		{http.MethodDelete, "/things/1", "delete"},
	}

	for _, tc := range cases {
		req, _ := http.NewRequest(tc.method, srv.URL+tc.path, nil)
		res, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		body := make([]byte, 16)
		n, _ := res.Body.Read(body)
		res.Body.Close()
		if got := string(body[:n]); got != tc.want {
			t.Errorf("%s %s = %q, want %q", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	r := router.New()

	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api", mw("outer"))
	admin := api.Group("/admin", mw("inner"))
	admin.Get("/ping", "admin.ping", okHandler("pong"))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/api/admin/ping")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/products/{id}", "products.show", okHandler("ok"))

	path, ok := r.Path("products.show")
	if !ok || path != "/products/{id}" {
		t.Fatalf("Path = %q, %v", path, ok)
	}

	url, err := r.URL("products.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/products/42" {
		t.Errorf("URL = %q", url)
	}

	if _, err := r.URL("products.show", nil); err == nil {
		t.Error("expected missing-parameter error")
	}

	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected unknown-route error")
	}
}

func TestRoutesListingSorted(t *testing.T) {
	r := router.New()
	r.Post("/b", "b.create", okHandler("ok"))
	r.Get("/a", "a.index", okHandler("ok"))

	routes := r.Routes()
	if len(routes) != 2 {
		t.Fatalf("len = %d", len(routes))
	}
	if routes[0].Path != "/a" || routes[1].Path != "/b" {
		t.Errorf("routes not sorted by path: %+v", routes)
	}
}
