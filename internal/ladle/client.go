package ladle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 15 * time.Second

// answer is the uniform envelope every ladle endpoint replies with.
type answer[T any] struct {
	Accept bool   `json:"accept"`
	Error  string `json:"error"`
	Data   *T     `json:"data"`
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient overrides the transport when set; Timeout is ignored then.
	HTTPClient *http.Client
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{Timeout: defaultTimeout}
}

// Client speaks the ladle HTTP+JSON protocol against one remote.
type Client struct {
	base string
	http *http.Client
}

// NewClient constructs a client bound to one remote base URL.
func NewClient(cfg ClientConfig) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrBaseURLRequired
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{base: base, http: httpClient}, nil
}

// BaseURL reports the remote this client is bound to.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) call(ctx context.Context, method, path string, query, form url.Values) (*http.Response, error) {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var req *http.Request
	var err error
	if form != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(form.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("ladle: build %s %s: %w", method, path, err)
	}

	log.Debug().Str("method", method).Str("url", endpoint).Msg("ladle.Client.call")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ladle: %s %s: %w", method, path, err)
	}
	return resp, nil
}

func decodeAnswer[T any](method, path string, resp *http.Response) (T, error) {
	var zero T
	defer resp.Body.Close()

	var ans answer[T]
	if err := json.NewDecoder(resp.Body).Decode(&ans); err != nil {
		return zero, fmt.Errorf("ladle: decode %s %s: %w", method, path, err)
	}
	if !ans.Accept {
		return zero, &RemoteError{Verb: method, Path: path, Message: ans.Error}
	}
	if ans.Data == nil {
		return zero, fmt.Errorf("%w: %s %s", ErrEmptyAnswer, method, path)
	}
	return *ans.Data, nil
}

// decodeAck handles verbs whose accepted answers carry no payload.
func decodeAck(method, path string, resp *http.Response) error {
	defer resp.Body.Close()

	var ans answer[json.RawMessage]
	if err := json.NewDecoder(resp.Body).Decode(&ans); err != nil {
		return fmt.Errorf("ladle: decode %s %s: %w", method, path, err)
	}
	if !ans.Accept {
		return &RemoteError{Verb: method, Path: path, Message: ans.Error}
	}
	return nil
}

func getJSON[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	resp, err := c.call(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeAnswer[T](http.MethodGet, path, resp)
}

func sendForm[T any](ctx context.Context, c *Client, method, path string, form url.Values) (T, error) {
	resp, err := c.call(ctx, method, path, nil, form)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeAnswer[T](method, path, resp)
}

func (c *Client) ack(ctx context.Context, method, path string, form url.Values) error {
	resp, err := c.call(ctx, method, path, nil, form)
	if err != nil {
		return err
	}
	return decodeAck(method, path, resp)
}

func patternQuery(pattern string) url.Values {
	return url.Values{"name": {pattern}}
}

func fieldsToForm(fields map[string]string) url.Values {
	form := url.Values{}
	for key, value := range fields {
		form.Set(key, value)
	}
	return form
}

func classificationForm(form url.Values, class Classifications) url.Values {
	form.Set("dairy", strconv.FormatBool(class.Dairy))
	form.Set("meat", strconv.FormatBool(class.Meat))
	form.Set("gluten", strconv.FormatBool(class.Gluten))
	form.Set("animal_product", strconv.FormatBool(class.AnimalProduct))
	return form
}

// RecipeIndex lists recipes whose names match pattern; an empty pattern
// lists everything.
func (c *Client) RecipeIndex(ctx context.Context, pattern string) ([]RecipeIndex, error) {
	return getJSON[[]RecipeIndex](ctx, c, "/recipes", patternQuery(pattern))
}

// RecipeGet fetches one full recipe record.
func (c *Client) RecipeGet(ctx context.Context, id string) (Recipe, error) {
	return getJSON[Recipe](ctx, c, "/recipes/"+url.PathEscape(id), nil)
}

// RecipeCreate creates a recipe from its scalar fields and returns the
// record the remote stored, including its assigned id.
func (c *Client) RecipeCreate(ctx context.Context, draft RecipeDraft) (Recipe, error) {
	form := url.Values{}
	form.Set("name", draft.Name)
	form.Set("author", draft.Author)
	form.Set("directions", draft.Directions)
	form.Set("information", draft.Information)
	return sendForm[Recipe](ctx, c, http.MethodPost, "/recipes/new", form)
}

// RecipeUpdate applies a sparse field update to one recipe.
func (c *Client) RecipeUpdate(ctx context.Context, id string, fields map[string]string) (Recipe, error) {
	return sendForm[Recipe](ctx, c, http.MethodPut, "/recipes/"+url.PathEscape(id), fieldsToForm(fields))
}

func (c *Client) RecipeDelete(ctx context.Context, id string) error {
	return c.ack(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(id), nil)
}

// RequirementCreate attaches an (ingredient, quantity) edge to a recipe.
func (c *Client) RequirementCreate(ctx context.Context, recipeID, ingredientID, quantity string, optional bool) error {
	form := url.Values{}
	form.Set("ingredient_id", ingredientID)
	form.Set("quantity", quantity)
	form.Set("optional", strconv.FormatBool(optional))
	return c.ack(ctx, http.MethodPost, "/recipes/"+url.PathEscape(recipeID)+"/requirements/add", form)
}

func (c *Client) RequirementUpdate(ctx context.Context, recipeID, ingredientID, quantity string) error {
	form := url.Values{}
	form.Set("quantity", quantity)
	return c.ack(ctx, http.MethodPut, "/recipes/"+url.PathEscape(recipeID)+"/requirements/"+url.PathEscape(ingredientID), form)
}

func (c *Client) RequirementDelete(ctx context.Context, recipeID, ingredientID string) error {
	return c.ack(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(recipeID)+"/requirements/"+url.PathEscape(ingredientID), nil)
}

// DependencyCreate attaches a prerequisite edge between two recipes on the
// same remote.
func (c *Client) DependencyCreate(ctx context.Context, recipeID, requiredID, quantity string, optional bool) error {
	form := url.Values{}
	form.Set("required_id", requiredID)
	form.Set("quantity", quantity)
	form.Set("optional", strconv.FormatBool(optional))
	return c.ack(ctx, http.MethodPost, "/recipes/"+url.PathEscape(recipeID)+"/dependencies/add", form)
}

func (c *Client) DependencyDelete(ctx context.Context, recipeID, requiredID string) error {
	return c.ack(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(recipeID)+"/dependencies/"+url.PathEscape(requiredID), nil)
}

// RecipeTag attaches a label by name; the remote resolves or creates the
// label itself.
func (c *Client) RecipeTag(ctx context.Context, recipeID, labelName string) error {
	form := url.Values{}
	form.Set("name", labelName)
	return c.ack(ctx, http.MethodPost, "/recipes/"+url.PathEscape(recipeID)+"/tags/add", form)
}

func (c *Client) RecipeUntag(ctx context.Context, recipeID, labelID string) error {
	return c.ack(ctx, http.MethodDelete, "/recipes/"+url.PathEscape(recipeID)+"/tags/"+url.PathEscape(labelID), nil)
}

func (c *Client) IngredientIndex(ctx context.Context, pattern string) ([]IngredientIndex, error) {
	return getJSON[[]IngredientIndex](ctx, c, "/ingredients", patternQuery(pattern))
}

func (c *Client) IngredientGet(ctx context.Context, id string) (Ingredient, error) {
	return getJSON[Ingredient](ctx, c, "/ingredients/"+url.PathEscape(id), nil)
}

// IngredientCreate creates an ingredient carrying its classification flags.
// Remotes deduplicate by name and answer with the surviving record.
func (c *Client) IngredientCreate(ctx context.Context, name string, class Classifications) (Ingredient, error) {
	form := url.Values{}
	form.Set("name", name)
	return sendForm[Ingredient](ctx, c, http.MethodPost, "/ingredients/new", classificationForm(form, class))
}

func (c *Client) IngredientUpdate(ctx context.Context, id string, fields map[string]string) (Ingredient, error) {
	return sendForm[Ingredient](ctx, c, http.MethodPut, "/ingredients/"+url.PathEscape(id), fieldsToForm(fields))
}

func (c *Client) IngredientDelete(ctx context.Context, id string) error {
	return c.ack(ctx, http.MethodDelete, "/ingredients/"+url.PathEscape(id), nil)
}

func (c *Client) LabelIndex(ctx context.Context, pattern string) ([]LabelIndex, error) {
	return getJSON[[]LabelIndex](ctx, c, "/labels", patternQuery(pattern))
}

func (c *Client) LabelGet(ctx context.Context, id string) (Label, error) {
	return getJSON[Label](ctx, c, "/labels/"+url.PathEscape(id), nil)
}

func (c *Client) LabelCreate(ctx context.Context, name string) (Label, error) {
	form := url.Values{}
	form.Set("name", name)
	return sendForm[Label](ctx, c, http.MethodPost, "/labels/new", form)
}

func (c *Client) LabelUpdate(ctx context.Context, id string, fields map[string]string) (Label, error) {
	return sendForm[Label](ctx, c, http.MethodPut, "/labels/"+url.PathEscape(id), fieldsToForm(fields))
}

func (c *Client) LabelDelete(ctx context.Context, id string) error {
	return c.ack(ctx, http.MethodDelete, "/labels/"+url.PathEscape(id), nil)
}
