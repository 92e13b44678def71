// Seeds a running blog-service with a fake author and a batch of posts
// through the public API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var baseURL = envOr("BLOG_URL", "http://localhost:8080")

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	email := gofakeit.Email()
	password := "123456" // default password
	name := gofakeit.Name()

	registerUser(email, password, name)
	token := loginUser(email, password)
	if token == "" {
		log.Fatal("Could not obtain token, aborting seeding process")
	}

	statuses := []string{"draft", "published"}
	for i := 0; i < 20; i++ {
		createPost(token, statuses[gofakeit.Number(0, 1)])
	}
	listPosts()
	searchPosts(gofakeit.Word())
}

func registerUser(email, password, name string) {
	payload := map[string]string{"email": email, "password": password, "name": name}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+"/users", "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Println("Error in registerUser:", err)
		return
	}
	defer resp.Body.Close()
	log.Printf("registerUser: %s status: %s", email, resp.Status)
}

func loginUser(email, password string) string {
	payload := map[string]string{"email": email, "password": password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(baseURL+"/users/login", "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Println("Error in loginUser:", err)
		return ""
	}
	defer resp.Body.Close()
	var result map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&result)
	token, _ := result["access_token"].(string)
	log.Printf("loginUser: %s status: %s", email, resp.Status)
	return token
}

func createPost(token, status string) {
	payload := map[string]any{
		"title":   gofakeit.HipsterSentence(4),
		"preview": gofakeit.Sentence(12),
		"body":    gofakeit.Paragraph(4, 6, 20, "\n\n"),
		"status":  status,
		"tags":    []string{gofakeit.Word(), gofakeit.Word()},
	}
	data, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", baseURL+"/posts", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Println("Error in createPost:", err)
		return
	}
	defer resp.Body.Close()
	log.Printf("createPost (%s) status: %s location: %s", status, resp.Status, resp.Header.Get("Location"))
}

func listPosts() {
	resp, err := http.Get(baseURL + "/posts")
	if err != nil {
		log.Println("Error in listPosts:", err)
		return
	}
	defer resp.Body.Close()
	log.Println("listPosts status:", resp.Status)
}

func searchPosts(query string) {
	resp, err := http.Get(fmt.Sprintf("%s/search?query=%s", baseURL, query))
	if err != nil {
		log.Println("Error in searchPosts:", err)
		return
	}
	defer resp.Body.Close()
	log.Println("searchPosts status:", resp.Status)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
