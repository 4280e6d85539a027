package fastmcp

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Calculator is the arithmetic fixture used across the dispatch tests.
type Calculator struct{}

func NewCalculator() *Calculator {
	c := &Calculator{}
	AttachTool(c, "Add", ToolConfig{Name: "add"})
	return c
}

// Adds two numbers.
// @param a the first number
// @param b the second number
// @returns the sum
func (c *Calculator) Add(args map[string]any) (float64, error) {
	a, okA := args["a"].(float64)
	b, okB := args["b"].(float64)
	if !okA || !okB {
		return 0, errors.New("a and b must be numbers")
	}
	return a + b, nil
}

/**
 * Divides one number by another.
 * @param dividend the number to divide
 * @param divisor the number to divide by
 */
func (c *Calculator) Divide(ctx context.Context, args map[string]any) (float64, error) {
	divisor := args["divisor"].(float64)
	if divisor == 0 {
		return 0, errors.New("division by zero")
	}
	return args["dividend"].(float64) / divisor, nil
}

// Echoes the raw argument payload back to the caller.
func (c *Calculator) Inspect(args map[string]any) map[string]any {
	return args
}

// Greeter is the prompt fixture.
type Greeter struct {
	Salutation string
}

// Builds a short greeting.
// @param name who to greet
func (g *Greeter) Greeting(args map[string]any) string {
	salutation := g.Salutation
	if salutation == "" {
		salutation = "Hello"
	}
	return fmt.Sprintf("%s, %v!", salutation, args["name"])
}

// @param topic what to rant about
func (g *Greeter) Rant(args map[string]any) (string, error) {
	return "", errors.New("too tired to rant")
}

// Library is the resource fixture.
type Library struct{}

// Reads any file by URI.
func (l *Library) ReadFile(args map[string]any) string {
	return fmt.Sprintf("contents of %v", args["uri"])
}

// Serves the project readme.
func (l *Library) Readme(args map[string]any) string {
	return "# readme"
}

// Shapes exercises result normalization.
type Shapes struct{}

func (s *Shapes) Text(args map[string]any) string          { return "plain" }
func (s *Shapes) NotANumber(args map[string]any) float64   { return math.NaN() }
func (s *Shapes) Nothing(args map[string]any) error        { return nil }
func (s *Shapes) Null(args map[string]any) map[string]any  { return nil }
func (s *Shapes) Struct(args map[string]any) shapesPayload { return shapesPayload{ID: 7, Tag: "x"} }
func (s *Shapes) Panics(args map[string]any) string        { panic("boom") }

type shapesPayload struct {
	ID  int    `json:"id"`
	Tag string `json:"tag"`
}

// described is the self-describing fixture for the secondary registration
// path: it carries no annotations and no constructor registration.
type described struct{}

func (d *described) Ping(args map[string]any) string { return "pong" }

func (d *described) MCPTools() []ToolDef {
	return []ToolDef{{Method: "Ping", ToolConfig: ToolConfig{Name: "ping", Description: "liveness probe"}}}
}
