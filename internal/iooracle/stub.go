package iooracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/sdmtools/sdmins/pkg/sdmins"
)

// StubOption adjusts the stub's behavior.
type StubOption func(*stub)

// StubMutate rewrites every reply before it is returned. Tests use this
// to inject factual errors and exercise the auditor's detection paths.
func StubMutate(fn func(*sdmins.InsightReply)) StubOption {
	return func(s *stub) {
		s.mutate = fn
	}
}

// StubFailFirst makes the first n calls return malformed output, which
// lets tests exercise the synthesizer's retry path.
func StubFailFirst(n int) StubOption {
	return func(s *stub) {
		s.failFirst = n
	}
}

// stub implements sdmins.Oracle locally and deterministically. It reads
// the fact block of the prompt and phrases it with a fixed template, so
// offline runs produce insights that audit at 100% accuracy.
type stub struct {
	mutate    func(*sdmins.InsightReply)
	failFirst int

	mu    sync.Mutex
	calls int
}

// NewStub creates the deterministic stub oracle.
func NewStub(opts ...StubOption) sdmins.Oracle {
	res := &stub{}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Generate phrases the prompt's fact block with a fixed template.
func (s *stub) Generate(
	ctx context.Context,
	prompt string,
	_ *sdmins.Schema,
) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.calls++
	failing := s.calls <= s.failFirst
	s.mu.Unlock()
	if failing {
		return json.RawMessage(`{"unexpected":`), nil
	}

	data, err := sdmins.ExtractPromptData(prompt)
	if err != nil {
		return nil, EmptyReplyError("stub")
	}

	reply := sdmins.InsightReply{
		Claims:     data.Claims,
		Categories: data.Categories,
	}
	if len(data.ThemePool) > 0 {
		reply.Themes = []string{data.ThemePool[0]}
	}
	reply.InsightText = render(data, reply.Themes)

	if s.mutate != nil {
		s.mutate(&reply)
	}

	raw, err := json.Marshal(reply)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// render builds the narrative from the template slots: campus, period,
// category labels, metric changes and cited themes.
func render(data *sdmins.PromptData, themes []string) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"En %s %d, %s registró una salud de marca %s, con visibilidad %s y resonancia %s.",
		data.Month, data.Year, data.CampusName,
		data.Categories.SaludDeMarca,
		data.Categories.Visibilidad,
		data.Categories.Resonancia,
	)
	for _, c := range data.Claims {
		mag := c.PctChange
		if mag < 0 {
			mag = -mag
		}
		fmt.Fprintf(&b, " El indicador de %s %s un %.1f%%.",
			c.Metric, c.Direction, mag)
	}
	for _, m := range data.MissingBaselines {
		fmt.Fprintf(&b,
			" Para %s no existe línea base del año anterior.", m)
	}
	if len(themes) > 0 {
		fmt.Fprintf(&b, " Destacó la publicación «%s».",
			strings.Join(themes, "», «"))
	}
	return b.String()
}
