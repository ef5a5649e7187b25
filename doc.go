/*
Package opsmcp is a gateway that exposes an operations REST API ("Core") to AI agents as
Model Context Protocol tools.

Each tool is a row in a contract table: a name, an input shape, the expected output shape
and the Core endpoint behind it. A call is validated against the input shape before
anything is sent, forwarded to Core with a bearer token and a timeout, and the decoded
result is returned to the agent as both indented JSON text and structured content.

# Layout

  - pkg/schema: input shapes and validation.
  - pkg/contract: the tool table and the OpenAPI description of the Core surface it uses.
  - pkg/core: the request pipeline (one round trip per call, typed failures, logging).
  - pkg/envelope: the text/structured result wrapper.
  - pkg/gateway: lookup, validation, execution and wrapping.
  - pkg/adapters/mcp: stdio and per-request HTTP bindings.
  - pkg/observability: Prometheus metrics and OpenTelemetry spans for Core calls.

# Usage

	opsmcp serve --http-port 7070
	opsmcp tools
	opsmcp call get-team --args '{"id":"payments"}'

Configuration is read from environment variables (CORE_API_URL, CORE_API_TOKEN,
CORE_TIMEOUT_MS, LOG_LEVEL, MCP_HTTP_PORT, ...) and optionally a YAML file.
*/
package opsmcp
