package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// testnode is a fake JSON-RPC node for exercising the router locally. The
// method name selects the behavior: "test.fail" answers HTTP 500, "test.busy"
// answers a server-error envelope, "test.missing" answers a not-found style
// envelope, "test.slow" delays before answering, anything else echoes.
func main() {
	port := "8091"
	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	handler := func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		log.Printf("[Port %s] %s %s method=%s", port, r.Method, r.URL.Path, req.Method)
		w.Header().Set("Content-Type", "application/json")

		switch req.Method {
		case "test.fail":
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"simulated node failure"}`)

		case "test.busy":
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32000,"message":"server error"}}`, req.ID)

		case "test.missing":
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32602,"message":"resource not found"}}`, req.ID)

		case "test.slow":
			time.Sleep(2 * time.Second)
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"status":"slow","port":"%s"}}`, req.ID, port)

		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":{"method":%q,"port":"%s"}}`, req.ID, req.Method, port)
		}
	}

	// Same behavior on the bare URL and on the contract path so both
	// transports can point at this node.
	http.HandleFunc("/", handler)
	http.HandleFunc("/contracts", handler)

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Test node listening on port %s", port)
	log.Fatal(http.ListenAndServe(addr, nil))
}
