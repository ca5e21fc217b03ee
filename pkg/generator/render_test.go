package generator

import (
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFS = fstest.MapFS{
	"react/layout.tsx.tmpl": {Data: []byte("export function {{ pascalCase .Name }}Layout() {}\n")},
	"react/broken.tmpl":     {Data: []byte("{{ .Name }")},
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer()
	assert.NotNil(t, r.funcMap)
	assert.Empty(t, r.cache)
}

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		name        string
		templateStr string
		data        any
		expected    string
		errContains string
	}{
		{
			name:        "plain text",
			templateStr: "Hello World",
			expected:    "Hello World",
		},
		{
			name:        "struct data",
			templateStr: "Hello, {{ .Name }}!",
			data:        struct{ Name string }{Name: "shop"},
			expected:    "Hello, shop!",
		},
		{
			name:        "map data",
			templateStr: "VITE_{{ screamingCase .name }}=1",
			data:        map[string]any{"name": "api-url"},
			expected:    "VITE_API_URL=1",
		},
		{
			name:        "syntax error",
			templateStr: "{{ .Name }",
			errContains: "failed to parse template",
		},
		{
			name:        "missing struct field",
			templateStr: "{{ .NonExistent }}",
			data:        struct{}{},
			errContains: "failed to render template",
		},
		{
			name:        "missing map key",
			templateStr: "{{ .absent }}",
			data:        map[string]any{},
			errContains: "failed to render template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.RenderString(tt.name, tt.templateStr, tt.data)

			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestRenderFS(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderFS(testFS, "react/layout.tsx.tmpl", map[string]any{"Name": "my-shop"})
	require.NoError(t, err)
	assert.Equal(t, "export function MyShopLayout() {}\n", string(out))

	_, err = r.RenderFS(testFS, "react/missing.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template from fs")

	_, err = r.RenderFS(testFS, "react/broken.tmpl", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}

func TestCaching(t *testing.T) {
	r := NewRenderer()

	_, err := r.RenderString("greeting", "Hi {{ .Name }}", map[string]any{"Name": "a"})
	require.NoError(t, err)
	assert.Len(t, r.cache, 1)

	// Same name reuses the cached template even if the text differs.
	out, err := r.RenderString("greeting", "ignored", map[string]any{"Name": "b"})
	require.NoError(t, err)
	assert.Equal(t, "Hi b", string(out))

	r.ClearCache()
	assert.Empty(t, r.cache)
}

func TestConcurrentRendering(t *testing.T) {
	r := NewRenderer()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.RenderFS(testFS, "react/layout.tsx.tmpl", map[string]any{"Name": "app"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		in                           string
		pascal, camel, kebab, scream string
	}{
		{"my-app", "MyApp", "myApp", "my-app", "MY_APP"},
		{"user_profile", "UserProfile", "userProfile", "user-profile", "USER_PROFILE"},
		{"userProfile", "UserProfile", "userProfile", "user-profile", "USER_PROFILE"},
		{"HTTPServer", "HttpServer", "httpServer", "http-server", "HTTP_SERVER"},
		{"My Shop", "MyShop", "myShop", "my-shop", "MY_SHOP"},
		{"2fa-app", "2faApp", "2faApp", "2fa-app", "2FA_APP"},
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.camel, CamelCase(tt.in))
			assert.Equal(t, tt.kebab, KebabCase(tt.in))
			assert.Equal(t, tt.scream, ScreamingCase(tt.in))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "My Shop", Title("my-shop"))
	assert.Equal(t, "Admin Panel", Title("admin_PANEL"))
	assert.Equal(t, "", Title(""))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"shop"`, Quote("shop"))
	assert.Equal(t, `"say \"hi\""`, Quote(`say "hi"`))
}

func TestDict(t *testing.T) {
	m, err := Dict("name", "app", "port", 5173)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "app", "port": 5173}, m)

	_, err = Dict("odd")
	assert.Error(t, err)

	_, err = Dict(1, "value")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	assert.Equal(t, "fallback", Default("fallback", nil))
	assert.Equal(t, "fallback", Default("fallback", ""))
	assert.Equal(t, "fallback", Default("fallback", []string{}))
	assert.Equal(t, "fallback", Default("fallback", map[string]any{}))
	assert.Equal(t, "set", Default("fallback", "set"))
	assert.Equal(t, 0, Default(8080, 0))
}

func TestHelperFunctionsInTemplate(t *testing.T) {
	r := NewRenderer()

	tmpl := `{{ title .Name }}|{{ kebabCase .Name }}|{{ join .Deps "," }}|{{ default "npm" .PM }}`
	out, err := r.RenderString("helpers", tmpl, map[string]any{
		"Name": "MyShop",
		"Deps": []string{"react-router-dom", "zustand"},
		"PM":   "",
	})
	require.NoError(t, err)
	assert.Equal(t, "My Shop|my-shop|react-router-dom,zustand|npm", string(out))
}

func TestDelims(t *testing.T) {
	r := NewRenderer().Delims("[[", "]]")

	out, err := r.RenderString("jsx", `<div style={{ padding: 24 }}>[[ title .Name ]]</div>`, map[string]any{"Name": "my-shop"})
	require.NoError(t, err)
	assert.Equal(t, `<div style={{ padding: 24 }}>My Shop</div>`, string(out))
}
