// Package fastmcp turns ordinary Go methods into MCP tools, prompt
// templates, and addressable resources.
//
// A method becomes an operation through an annotation: either at package
// initialization time,
//
//	func init() {
//		fastmcp.Tool[*Calculator]("Add", fastmcp.ToolConfig{Name: "add"})
//	}
//
// or at construction time, from the owning type's constructor:
//
//	func NewCalculator() *Calculator {
//		c := &Calculator{}
//		fastmcp.AttachTool(c, "Add", fastmcp.ToolConfig{Name: "add"})
//		return c
//	}
//
// Both forms resolve the same way. Fields left unspecified in the explicit
// configuration are inferred from the documentation block above the method
// declaration: the summary prose becomes the description, and @param lines
// become a typed parameter schema. Explicit configuration always wins;
// inference is strictly best-effort and silent when the source is
// unavailable.
//
//	// Adds two numbers.
//	// @param a the first number
//	// @param b the second number
//	// @returns the sum
//	func (c *Calculator) Add(args map[string]any) (float64, error) {
//		return args["a"].(float64) + args["b"].(float64), nil
//	}
//
// Resolved descriptors collect in a kind-partitioned registry keyed by the
// owning type. A Server binds them to live instances and serves them over
// stdio, SSE, or streamable HTTP:
//
//	srv := fastmcp.NewServer(fastmcp.ServerOptions{Name: "calc", Version: "1.0.0"})
//	if err := srv.RegisterInstance(NewCalculator()); err != nil {
//		log.Fatal(err)
//	}
//	if err := srv.Run(ctx, fastmcp.TransportConfig{Kind: fastmcp.TransportStdio}); err != nil {
//		log.Fatal(err)
//	}
//
// Annotated methods take an optional leading context.Context and one
// map[string]any payload, and return one value (normalized to text for the
// wire) with an optional trailing error.
package fastmcp
