// Package iooracle provides the backing implementations of the Oracle
// capability: a remote Gemini client and a deterministic local stub.
package iooracle

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/sdmins"
	"google.golang.org/genai"
)

// gemini implements sdmins.Oracle on the Google GenAI API with structured
// JSON output enforced through a response schema.
type gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed oracle. The API key comes from the
// config or, if empty, from the GEMINI_API_KEY environment variable.
func NewGemini(ctx context.Context, cfg config.OracleConfig) (sdmins.Oracle, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, APIKeyError()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, ClientError(err)
	}

	return &gemini{
		client:  client,
		model:   cfg.Model,
		timeout: time.Duration(cfg.Timeout) * time.Second,
	}, nil
}

// Generate sends the prompt and returns the model's JSON reply. The call
// carries its own timeout; retries belong to the caller.
func (g *gemini) Generate(
	ctx context.Context,
	prompt string,
	schema *sdmins.Schema,
) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	}
	if schema != nil {
		genCfg.ResponseSchema = toGenaiSchema(schema)
	}

	resp, err := g.client.Models.GenerateContent(
		ctx, g.model, genai.Text(prompt), genCfg,
	)
	if err != nil {
		return nil, ClientError(err)
	}

	text := resp.Text()
	if text == "" {
		return nil, EmptyReplyError(g.model)
	}
	return json.RawMessage(text), nil
}

// toGenaiSchema translates the provider-neutral schema into the GenAI
// representation.
func toGenaiSchema(s *sdmins.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	res := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	switch s.Type {
	case sdmins.TypeObject:
		res.Type = genai.TypeObject
	case sdmins.TypeArray:
		res.Type = genai.TypeArray
	case sdmins.TypeString:
		res.Type = genai.TypeString
	case sdmins.TypeNumber:
		res.Type = genai.TypeNumber
	case sdmins.TypeInteger:
		res.Type = genai.TypeInteger
	case sdmins.TypeBoolean:
		res.Type = genai.TypeBoolean
	}
	if len(s.Properties) > 0 {
		res.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			res.Properties[k] = toGenaiSchema(v)
		}
	}
	if s.Items != nil {
		res.Items = toGenaiSchema(s.Items)
	}
	return res
}
