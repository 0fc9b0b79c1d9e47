// Command seed exercises a running server end to end: it creates a demo
// customer and two products, places an order and reads it back.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

func baseURL() string {
	if v := os.Getenv("SHOP_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func post(path string, body any) (map[string]any, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL()+path, "application/json", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %d: %v", path, resp.StatusCode, out["error"])
	}
	return out, nil
}

func main() {
	suffix := time.Now().Format("150405")

	customer, err := post("/customers", map[string]any{
		"name":  "Demo Customer",
		"email": fmt.Sprintf("demo-%s@example.com", suffix),
	})
	if err != nil {
		log.Fatalf("create customer: %v", err)
	}
	log.Printf("customer %s", customer["id"])

	keyboard, err := post("/products", map[string]any{
		"name": "Keyboard " + suffix, "price": "49.90", "quantity": 10,
	})
	if err != nil {
		log.Fatalf("create product: %v", err)
	}
	mouse, err := post("/products", map[string]any{
		"name": "Mouse " + suffix, "price": "19.90", "quantity": 5,
	})
	if err != nil {
		log.Fatalf("create product: %v", err)
	}
	log.Printf("products %s, %s", keyboard["id"], mouse["id"])

	order, err := post("/orders", map[string]any{
		"customer_id": customer["id"],
		"products": []map[string]any{
			{"id": keyboard["id"], "quantity": 3},
			{"id": mouse["id"], "quantity": 2},
		},
	})
	if err != nil {
		log.Fatalf("place order: %v", err)
	}

	pretty, _ := json.MarshalIndent(order, "", "  ")
	fmt.Println(string(pretty))
}
