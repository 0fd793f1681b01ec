package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	cartrepo "marketplace-api/internal/repository/cart"
	productrepo "marketplace-api/internal/repository/product"
	purchaserepo "marketplace-api/internal/repository/purchase"
	userrepo "marketplace-api/internal/repository/user"
	authsvc "marketplace-api/internal/service/auth"
	cartsvc "marketplace-api/internal/service/cart"
	productsvc "marketplace-api/internal/service/product"
	purchasesvc "marketplace-api/internal/service/purchase"
	usersvc "marketplace-api/internal/service/user"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()

	users := userrepo.NewMemory()
	products := productrepo.NewMemory()
	carts := cartrepo.NewMemory()
	purchases := purchaserepo.NewMemory()

	auth := authsvc.New(users, "test-secret", time.Hour)
	cartService := cartsvc.New(carts, products)

	router, err := buildRouter(discardLogger(), nil, Deps{
		Auth:      auth,
		Users:     usersvc.New(users),
		Products:  productsvc.New(products, users),
		Carts:     cartService,
		Purchases: purchasesvc.New(purchases, cartService, discardLogger()),
	}, opts)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, router *gin.Engine, email, username string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "secret1",
		"username": username,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, rec.Code, rec.Body.String())
	}
	token, _ := decodeBody(t, rec)["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in response", email)
	}
	return token
}

func createProduct(t *testing.T, router *gin.Engine, token, title string, price float64) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/products", token, gin.H{
		"title":       title,
		"description": "test listing",
		"category":    "Electronics",
		"price":       price,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: status %d, body %s", rec.Code, rec.Body.String())
	}
	product, _ := decodeBody(t, rec)["product"].(map[string]any)
	id, _ := product["id"].(string)
	if id == "" {
		t.Fatalf("create product: no id in response %s", rec.Body.String())
	}
	return id
}

func TestHealthAndCategories(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := doJSON(t, router, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status %d", rec.Code)
	}
	if decodeBody(t, rec)["status"] != "OK" {
		t.Fatalf("health: body %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/categories", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("categories: status %d", rec.Code)
	}
	var categories []string
	if err := json.Unmarshal(rec.Body.Bytes(), &categories); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(categories) == 0 || categories[0] != "Electronics" {
		t.Fatalf("unexpected categories: %v", categories)
	}
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t, Options{})

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Access token required" {
		t.Fatalf("missing token: body %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/cart", "not-a-real-token", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("bad token: status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Invalid or expired token" {
		t.Fatalf("bad token: body %s", rec.Body.String())
	}
}

func TestRegister_DuplicateAndValidation(t *testing.T) {
	router := newTestRouter(t, Options{})

	registerUser(t, router, "a@x.com", "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "a@x.com",
		"password": "secret2",
		"username": "alice2",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "User already exists" {
		t.Fatalf("duplicate: body %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "bad",
		"password": "x",
		"username": "y",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid input: status %d", rec.Code)
	}
	if _, ok := decodeBody(t, rec)["errors"]; !ok {
		t.Fatalf("invalid input: expected field errors, body %s", rec.Body.String())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	router := newTestRouter(t, Options{})
	registerUser(t, router, "a@x.com", "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "a@x.com",
		"password": "wrong",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Invalid credentials" {
		t.Fatalf("body %s", rec.Body.String())
	}
}

func TestProducts_PublicListShape(t *testing.T) {
	router := newTestRouter(t, Options{})
	token := registerUser(t, router, "s@x.com", "seller")
	for i := 0; i < 15; i++ {
		createProduct(t, router, token, fmt.Sprintf("Item %02d", i), 10)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/products?page=2&limit=10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 15 || body["page"].(float64) != 2 || body["totalPages"].(float64) != 2 {
		t.Fatalf("unexpected page meta: %s", rec.Body.String())
	}
	if items := body["products"].([]any); len(items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(items))
	}

	rec = doJSON(t, router, http.MethodGet, "/api/products/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing product: status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Product not found" {
		t.Fatalf("missing product: body %s", rec.Body.String())
	}
}

func TestProducts_CrossUserUpdateForbidden(t *testing.T) {
	router := newTestRouter(t, Options{})
	seller := registerUser(t, router, "s@x.com", "seller")
	intruder := registerUser(t, router, "i@x.com", "intruder")
	id := createProduct(t, router, seller, "City Bike", 120)

	rec := doJSON(t, router, http.MethodPut, "/api/products/"+id, intruder, gin.H{
		"title":       "Stolen Bike",
		"description": "mine now",
		"category":    "Sports",
		"price":       1,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("update: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/products/"+id, intruder, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("delete: status %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestPurchaseFlow(t *testing.T) {
	router := newTestRouter(t, Options{})
	seller := registerUser(t, router, "s@x.com", "seller")
	buyer := registerUser(t, router, "b@x.com", "buyer")
	id := createProduct(t, router, seller, "Bluetooth Speaker", 50)

	rec := doJSON(t, router, http.MethodPost, "/api/cart", buyer, gin.H{
		"productId": "missing",
		"quantity":  1,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("add missing product: status %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/cart", buyer, gin.H{
		"productId": id,
		"quantity":  2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add to cart: status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/cart", buyer, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get cart: status %d", rec.Code)
	}
	var lines []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &lines); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(lines) != 1 || lines[0]["quantity"].(float64) != 2 {
		t.Fatalf("unexpected cart: %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/purchases", buyer, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: status %d, body %s", rec.Code, rec.Body.String())
	}
	purchase := decodeBody(t, rec)["purchase"].(map[string]any)
	if purchase["totalAmount"].(float64) != 100 {
		t.Fatalf("expected total 100, got %v", purchase["totalAmount"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/cart", buyer, nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty cart after checkout, got %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/purchases", buyer, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second checkout: status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Cart is empty" {
		t.Fatalf("second checkout: body %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/purchases", buyer, nil)
	var history []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected one purchase in history, got %s", rec.Body.String())
	}
}

func TestProfileUpdate(t *testing.T) {
	router := newTestRouter(t, Options{})
	token := registerUser(t, router, "a@x.com", "alice")

	rec := doJSON(t, router, http.MethodPut, "/api/user/profile", token, gin.H{
		"username": "alice2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: status %d, body %s", rec.Code, rec.Body.String())
	}
	user := decodeBody(t, rec)["user"].(map[string]any)
	if user["username"] != "alice2" {
		t.Fatalf("expected username alice2, got %v", user["username"])
	}

	rec = doJSON(t, router, http.MethodGet, "/api/user/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: status %d", rec.Code)
	}
	if decodeBody(t, rec)["username"] != "alice2" {
		t.Fatalf("profile: body %s", rec.Body.String())
	}
}

func TestUpload(t *testing.T) {
	router := newTestRouter(t, Options{UploadDir: t.TempDir(), MaxUploadBytes: 1 << 20})
	token := registerUser(t, router, "a@x.com", "alice")

	send := func(field, filename string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write part: %v", err)
		}
		mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := send("wrong-field", "pic.png")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing file: status %d", rec.Code)
	}

	rec = send("image", "script.sh")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad extension: status %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Only image files are allowed" {
		t.Fatalf("bad extension: body %s", rec.Body.String())
	}

	rec = send("image", "pic.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d, body %s", rec.Code, rec.Body.String())
	}
	url, _ := decodeBody(t, rec)["imageUrl"].(string)
	if !strings.HasPrefix(url, "/uploads/") {
		t.Fatalf("unexpected image url %q", url)
	}
}
