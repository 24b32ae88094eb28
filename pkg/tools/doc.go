// Package tools exposes the generation models as MCP tools.
//
// Sub-packages:
//   - [github.com/germanamz/genai/pkg/tools/toolbox]: Tool type and a name-indexed ToolBox
//   - [github.com/germanamz/genai/pkg/tools/gentools]: generate_text, generate_image and generate_speech tools built over the model wrappers
//   - [github.com/germanamz/genai/pkg/tools/mcpserver]: serves tools over stdio with the official MCP Go SDK
package tools
