package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	fastmcp "github.com/liudonghua123/fastmcp-go"
)

func init() {
	fastmcp.Prompt[*Greeter]("Greeting", fastmcp.PromptConfig{Name: "greeting"})

	fastmcp.Resource[*Library]("Readme", fastmcp.ResourceConfig{
		URI:      "doc://readme",
		Name:     "readme",
		MIMEType: "text/markdown",
	})
	fastmcp.Resource[*Library]("ReadFile", fastmcp.ResourceConfig{
		URIPattern: regexp.MustCompile(`^file://(.+)$`),
		Name:       "files",
	})
}

// Calculator annotates its tools in the constructor.
type Calculator struct{}

func NewCalculator() *Calculator {
	c := &Calculator{}
	fastmcp.AttachTool(c, "Add", fastmcp.ToolConfig{Name: "add"})
	fastmcp.AttachTool(c, "Divide", fastmcp.ToolConfig{Name: "divide"})
	return c
}

// Adds two numbers.
// @param a the first number
// @param b the second number
// @returns the sum of a and b
func (c *Calculator) Add(args map[string]any) (float64, error) {
	a, okA := args["a"].(float64)
	b, okB := args["b"].(float64)
	if !okA || !okB {
		return 0, errors.New("a and b must be numbers")
	}
	return a + b, nil
}

// Divides one number by another.
// @param dividend the number to divide
// @param divisor the number to divide by
// @returns the quotient
func (c *Calculator) Divide(args map[string]any) (float64, error) {
	divisor, ok := args["divisor"].(float64)
	if !ok || divisor == 0 {
		return 0, errors.New("divisor must be a non-zero number")
	}
	dividend, ok := args["dividend"].(float64)
	if !ok {
		return 0, errors.New("dividend must be a number")
	}
	return dividend / divisor, nil
}

// Greeter builds greeting prompts.
type Greeter struct {
	Salutation string
}

// Builds a short greeting for someone.
// @param name who to greet
func (g *Greeter) Greeting(args map[string]any) string {
	return fmt.Sprintf("%s, %v!", g.Salutation, args["name"])
}

// Library serves files under its root directory.
type Library struct {
	Root string
}

// Serves the project readme.
func (l *Library) Readme(args map[string]any) (string, error) {
	data, err := os.ReadFile(filepath.Join(l.Root, "README.md"))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Reads a file by file:// URI, confined to the library root.
func (l *Library) ReadFile(args map[string]any) (string, error) {
	uri, _ := args["uri"].(string)
	rel := strings.TrimPrefix(uri, "file://")
	path := filepath.Join(l.Root, filepath.Clean("/"+rel))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
