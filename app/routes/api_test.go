package routes_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/looklush/storefront/app/controllers"
	"github.com/looklush/storefront/app/routes"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/router"
	"github.com/looklush/storefront/pkg/session"
	"github.com/looklush/storefront/pkg/testkit"
)

// apiHandler builds the full route table over a fresh in-memory store.
// The services seed their own first-run data (sample catalogue, the two
// built-in accounts, the contact card).
func apiHandler(t *testing.T) http.Handler {
	t.Helper()

	mem := kvstore.NewMemory()
	users := services.NewUsers(mem)
	catalog := services.NewCatalog(mem)
	carts := services.NewCarts(mem)
	orders := services.NewOrders(mem)
	audit := services.NewAudit(mem)
	contact := services.NewContact(mem)
	messages := services.NewMessages(mem)
	auth := services.NewAuth(users, mem)
	checkout := services.NewCheckout(catalog, carts, orders, mem,
		services.SimulatedGateway{Delay: time.Millisecond}, services.ClearSelected)

	gql, err := controllers.NewGraphQLController(catalog)
	if err != nil {
		t.Fatalf("graphql schema: %v", err)
	}

	r := router.New()
	r.Use(session.Middleware(session.DefaultOptions()))
	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		Catalog:  controllers.NewCatalogController(catalog),
		Cart:     controllers.NewCartController(carts, catalog),
		Checkout: controllers.NewCheckoutController(checkout, orders),
		Contact:  controllers.NewContactController(contact, messages),
		GraphQL:  gql,

		AdminProducts: controllers.NewAdminProductsController(catalog, audit),
		AdminUsers:    controllers.NewAdminUsersController(users, audit),
		AdminMessages: controllers.NewAdminMessagesController(messages, audit),
		AdminAudit:    controllers.NewAdminAuditController(audit),
		AdminContact:  controllers.NewAdminContactController(contact, audit),
		AdminOrders:   controllers.NewAdminOrdersController(orders),
	})
	return r.Handler()
}

// TestAPIScenarios drives the public surface from the JSON scenario files
// in testdata/.
func TestAPIScenarios(t *testing.T) {
	testkit.RunDir(t, apiHandler(t), "testdata")
}

// call fires one request at the handler, optionally with a bearer token
// and a JSON body, and decodes the response envelope.
func call(t *testing.T, h http.Handler, method, path, token, body string) (int, apiEnvelope) {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env apiEnvelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

type apiEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Data    json.RawMessage   `json:"data"`
}

func loginAdmin(t *testing.T, h http.Handler) string {
	t.Helper()

	code, env := call(t, h, http.MethodPost, "/api/auth/login", "",
		`{"email":"admin@looklush.com","password":"admin123"}`)
	require.Equal(t, http.StatusOK, code)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

// TestAdminUserUpdateOverHTTP walks the full authenticated path: login,
// bearer token, then a partial account update through the admin surface.
func TestAdminUserUpdateOverHTTP(t *testing.T) {
	h := apiHandler(t)
	token := loginAdmin(t, h)

	code, env := call(t, h, http.MethodPut, "/api/admin/users/2", token,
		`{"email":"shopper@looklush.com"}`)
	assert.Equal(t, http.StatusOK, code, "message: %s errors: %v", env.Message, env.Errors)

	var user struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "shopper@looklush.com", user.Email)
}

func TestAdminUserUpdateRejectsShortPassword(t *testing.T) {
	h := apiHandler(t)
	token := loginAdmin(t, h)

	code, env := call(t, h, http.MethodPut, "/api/admin/users/2", token,
		`{"password":"abc"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Errors, "password")
}

func TestAdminProductMutationsOverHTTP(t *testing.T) {
	h := apiHandler(t)
	token := loginAdmin(t, h)

	code, env := call(t, h, http.MethodPost, "/api/admin/products", token,
		`{"name":"Velvet Evening Clutch","price":79,"minPrice":50,"maxPrice":120,"category":"Accessories","stockQuantity":4}`)
	require.Equal(t, http.StatusCreated, code, "message: %s errors: %v", env.Message, env.Errors)

	var created struct {
		ID  string `json:"id"`
		SKU string `json:"sku"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Regexp(t, `^LLX-[A-Z]{3}-[0-9]{3}$`, created.SKU)

	code, env = call(t, h, http.MethodPut, "/api/admin/products/"+created.ID+"/stock", token,
		`{"quantity":9}`)
	require.Equal(t, http.StatusOK, code)

	var stocked struct {
		StockQuantity int  `json:"stockQuantity"`
		InStock       bool `json:"inStock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stocked))
	assert.Equal(t, 9, stocked.StockQuantity)
	assert.True(t, stocked.InStock)
}

func TestAdminMutationRequiresToken(t *testing.T) {
	h := apiHandler(t)

	code, _ := call(t, h, http.MethodPut, "/api/admin/users/2", "",
		`{"email":"nope@looklush.com"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminMutationRejectsNonAdminToken(t *testing.T) {
	h := apiHandler(t)

	code, env := call(t, h, http.MethodPost, "/api/auth/login", "",
		`{"email":"user@example.com","password":"user123"}`)
	require.Equal(t, http.StatusOK, code)

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))

	code, _ = call(t, h, http.MethodPut, "/api/admin/users/2", out.Token,
		`{"email":"sneaky@looklush.com"}`)
	assert.Equal(t, http.StatusForbidden, code)
}
