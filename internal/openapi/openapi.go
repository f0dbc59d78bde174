// Package openapi generates the OpenAPI 3.1 document served at
// /openapi.json, describing the public catalog and admin endpoints.
package openapi

import (
	"encoding/json"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/msfworks/showcase/internal/service"
)

// Spec builds the OpenAPI document for the API.
func Spec() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Showcase API",
			Description: "Marketing site backend: public product catalog plus cookie-authenticated admin panel.",
			Version:     "1.0.0",
		},
		Servers: openapi3.Servers{
			{URL: "/"},
		},
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{
		"Envelope": openapi3.NewSchemaRef("", envelopeSchema()),
		"Product":  openapi3.NewSchemaRef("", productSchema()),
		"User":     openapi3.NewSchemaRef("", userSchema()),
	}
	components.SecuritySchemes = openapi3.SecuritySchemes{
		"sessionCookie": &openapi3.SecuritySchemeRef{
			Value: &openapi3.SecurityScheme{
				Type: "apiKey",
				In:   "cookie",
				Name: service.SessionCookieName,
			},
		},
	}
	doc.Components = &components

	doc.Paths = openapi3.NewPaths()

	doc.Paths.Set("/api/v1/auth/login", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "login",
			Summary:     "Log in with username and password; sets the session cookie.",
			Tags:        []string{"auth"},
			Responses:   newResponses("200", "Login succeeded; Set-Cookie carries the session token."),
		},
	})
	doc.Paths.Set("/api/v1/auth/logout", &openapi3.PathItem{
		Post: &openapi3.Operation{
			OperationID: "logout",
			Summary:     "Delete the current session and clear the cookie.",
			Tags:        []string{"auth"},
			Responses:   newResponses("200", "Logged out; the session cookie is cleared."),
		},
	})
	doc.Paths.Set("/api/v1/auth/me", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "me",
			Summary:     "Return the authenticated identity.",
			Tags:        []string{"auth"},
			Security:    sessionSecurity(),
			Responses:   newResponses("200", "Current identity."),
		},
	})

	doc.Paths.Set("/api/v1/products", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listProducts",
			Summary:     "List active products in display order.",
			Tags:        []string{"products"},
			Responses:   newResponses("200", "Active products."),
		},
	})
	doc.Paths.Set("/api/v1/products/{slug}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "getProduct",
			Summary:     "Get one active product by slug.",
			Tags:        []string{"products"},
			Parameters:  pathParams("slug"),
			Responses:   newResponses("200", "The product."),
		},
	})

	doc.Paths.Set("/api/v1/admin/products", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "adminListProducts",
			Summary:     "List all products, inactive included.",
			Tags:        []string{"admin"},
			Security:    sessionSecurity(),
			Responses:   newResponses("200", "All products."),
		},
		Post: &openapi3.Operation{
			OperationID: "adminCreateProduct",
			Summary:     "Create a product.",
			Tags:        []string{"admin"},
			Security:    sessionSecurity(),
			Responses:   newResponses("201", "The created product."),
		},
	})
	doc.Paths.Set("/api/v1/admin/products/{id}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "adminGetProduct",
			Summary:     "Get one product by ID.",
			Tags:        []string{"admin"},
			Security:    sessionSecurity(),
			Parameters:  pathParams("id"),
			Responses:   newResponses("200", "The product."),
		},
		Patch: &openapi3.Operation{
			OperationID: "adminUpdateProduct",
			Summary:     "Partially update a product.",
			Tags:        []string{"admin"},
			Security:    sessionSecurity(),
			Parameters:  pathParams("id"),
			Responses:   newResponses("200", "The updated product."),
		},
		Delete: &openapi3.Operation{
			OperationID: "adminDeleteProduct",
			Summary:     "Delete a product.",
			Tags:        []string{"admin"},
			Security:    sessionSecurity(),
			Parameters:  pathParams("id"),
			Responses:   newResponses("200", "Deletion confirmation."),
		},
	})

	return doc
}

// Handler serves the generated document as JSON.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Spec())
	}
}

func sessionSecurity() *openapi3.SecurityRequirements {
	reqs := openapi3.NewSecurityRequirements()
	reqs.With(openapi3.SecurityRequirement{"sessionCookie": {}})
	return reqs
}

func pathParams(names ...string) openapi3.Parameters {
	params := openapi3.Parameters{}
	for _, name := range names {
		p := openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())
		params = append(params, &openapi3.ParameterRef{Value: p})
	}
	return params
}

func newResponses(statusCode, description string) *openapi3.Responses {
	responses := openapi3.NewResponses()

	successDesc := description
	envelopeRef := openapi3.NewSchemaRef("#/components/schemas/Envelope", nil)
	responses.Set(statusCode, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &successDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(envelopeRef),
		},
	})

	unauthDesc := "Unauthorized"
	responses.Set("401", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &unauthDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(envelopeRef),
		},
	})

	return responses
}

func envelopeSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("ok", openapi3.NewBoolSchema()).
		WithProperty("data", openapi3.NewObjectSchema()).
		WithProperty("error", openapi3.NewObjectSchema().
			WithProperty("message", openapi3.NewStringSchema()))
}

func productSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("slug", openapi3.NewStringSchema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema()).
		WithProperty("short_description", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("specs_json", openapi3.NewStringSchema()).
		WithProperty("images_json", openapi3.NewStringSchema()).
		WithProperty("is_active", openapi3.NewBoolSchema()).
		WithProperty("sort_order", openapi3.NewIntegerSchema())
}

func userSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("username", openapi3.NewStringSchema()).
		WithProperty("role", openapi3.NewStringSchema())
}
