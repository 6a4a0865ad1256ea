package forms

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonContext(t *testing.T, body map[string]any) *gin.Context {
	bodyBytes, err := json.Marshal(body)
	require.NoError(t, err)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(bodyBytes))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func queryContext(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func validationError(t *testing.T, err error) (string, string) {
	var respErr *response.Error
	require.ErrorAs(t, err, &respErr, "Validation failures must be response errors")

	payload, ok := respErr.Payload.(gin.H)
	require.True(t, ok, "Validation payload must name the field")
	return payload["error_field"].(string), payload["error_message"].(string)
}

func TestBind_FirstFailureWins(t *testing.T) {
	form := New(
		StringField("first", Required("first is missing")),
		StringField("second", Required("second is missing")),
	)

	// Both fields fail; only the first declared failure surfaces
	err := form.Bind(jsonContext(t, map[string]any{}), nil)

	field, message := validationError(t, err)
	assert.Equal(t, "first", field)
	assert.Equal(t, "first is missing", message)
}

func TestBind_ShapeBeforeSemantic(t *testing.T) {
	semanticRan := false
	form := New(
		StringField("name", Required("name is missing")).
			WithSemantic(func(f *Field, fm *Form) error {
				semanticRan = true
				return nil
			}),
	)

	err := form.Bind(jsonContext(t, map[string]any{}), nil)

	require.Error(t, err)
	assert.False(t, semanticRan, "Semantic pass must not run after a shape failure")
}

func TestBind_Defaults(t *testing.T) {
	form := New(
		IntField("page", IsInt("bad page")).WithDefault("1"),
		StringField("oby").WithDefault("ADD_TIME_DEC"),
	)

	err := form.Bind(jsonContext(t, map[string]any{}), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, form.Int("page"))
	assert.Equal(t, "ADD_TIME_DEC", form.Str("oby"))
	assert.False(t, form.Present("page"), "A defaulted field is not present")
}

func TestBind_BodyOverridesQueryOverridesFallback(t *testing.T) {
	form := New(
		StringField("a"),
		StringField("b"),
		StringField("c"),
	)

	bodyBytes, _ := json.Marshal(map[string]any{"a": "from-body"})
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/?a=from-query&b=from-query", bytes.NewReader(bodyBytes))
	c.Request.Header.Set("Content-Type", "application/json")

	err := form.Bind(c, map[string]string{"a": "from-fallback", "c": "from-fallback"})

	require.NoError(t, err)
	assert.Equal(t, "from-body", form.Str("a"))
	assert.Equal(t, "from-query", form.Str("b"))
	assert.Equal(t, "from-fallback", form.Str("c"))
}

func TestBind_NumericJSONBindsIntField(t *testing.T) {
	form := New(
		IntField("category", IsInt("bad category")),
	)

	// JSON numbers arrive as float64 and must still bind
	err := form.Bind(jsonContext(t, map[string]any{"category": 3}), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, form.Int("category"))
}

func TestBind_SemanticRewrite(t *testing.T) {
	form := New(
		StringField("oby").WithDefault("add_time_dec").WithSemantic(func(f *Field, fm *Form) error {
			f.Str = "ADD_TIME_DEC"
			return nil
		}),
	)

	err := form.Bind(jsonContext(t, map[string]any{}), nil)

	require.NoError(t, err)
	assert.Equal(t, "ADD_TIME_DEC", form.Str("oby"), "Handlers must see the rewritten value")
}

func TestBind_SemanticResponseErrorPassesThrough(t *testing.T) {
	form := New(
		StringField("name", Required("name is missing")).
			WithSemantic(func(f *Field, fm *Form) error {
				return response.ErrDatabase
			}),
	)

	err := form.Bind(jsonContext(t, map[string]any{"name": "value"}), nil)

	assert.Equal(t, response.ErrDatabase, err, "Response errors must not be rewrapped as validation")
}

func TestBind_SemanticPlainErrorBecomesValidation(t *testing.T) {
	form := New(
		StringField("name").WithSemantic(func(f *Field, fm *Form) error {
			return errors.New("name is taken")
		}),
	)

	err := form.Bind(jsonContext(t, map[string]any{"name": "value"}), nil)

	field, message := validationError(t, err)
	assert.Equal(t, "name", field)
	assert.Equal(t, "name is taken", message)
}

func TestBind_QueryOnly(t *testing.T) {
	form := New(
		IntField("page", IsInt("bad page")).WithDefault("1"),
		IntField("cid", IsInt("bad category")).WithDefault("0"),
	)

	err := form.Bind(queryContext("page=3&cid=7"), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, form.Int("page"))
	assert.Equal(t, 7, form.Int("cid"))
}

func TestChecks_Length(t *testing.T) {
	form := New(
		StringField("username", Length(6, 15, "bad length")),
	)

	testCases := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "too_short", value: "abc", valid: false},
		{name: "lower_bound", value: "abcdef", valid: true},
		{name: "upper_bound", value: "abcdefghijklmno", valid: true},
		{name: "too_long", value: "abcdefghijklmnop", valid: false},
		{name: "runes_not_bytes", value: "六字的用户名", valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := form.Bind(jsonContext(t, map[string]any{"username": tc.value}), nil)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestChecks_EqualTo(t *testing.T) {
	form := New(
		StringField("password", Required("password missing")),
		StringField("password2", EqualTo("password", "passwords differ")),
	)

	err := form.Bind(jsonContext(t, map[string]any{
		"password":  "secret-1",
		"password2": "secret-2",
	}), nil)

	field, message := validationError(t, err)
	assert.Equal(t, "password2", field)
	assert.Equal(t, "passwords differ", message)
}

func TestChecks_IsEmail(t *testing.T) {
	form := New(
		StringField("email", IsEmail("bad email")),
	)

	valid := []string{"user@example.com", "first.last@sub.example.org"}
	invalid := []string{"not-an-email", "@example.com", "user@", "user @example.com"}

	for _, email := range valid {
		err := form.Bind(jsonContext(t, map[string]any{"email": email}), nil)
		assert.NoError(t, err, "Expected %q to validate", email)
	}
	for _, email := range invalid {
		err := form.Bind(jsonContext(t, map[string]any{"email": email}), nil)
		assert.Error(t, err, "Expected %q to fail", email)
	}
}
