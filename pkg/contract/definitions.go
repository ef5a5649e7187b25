package contract

import (
	"net/http"

	"github.com/aretw0/opsmcp/pkg/schema"
)

// Capabilities accepted by list-providers.
var Capabilities = []string{"incident", "alert", "log", "metric", "ticket", "service"}

// Shared field shapes. The constraint policy is the same for every tool.
var (
	// ScopeShape narrows backend filtering; every member is optional.
	ScopeShape = schema.NewObject(
		schema.Field{Name: "service", Type: schema.String(), Description: "Service name"},
		schema.Field{Name: "team", Type: schema.String(), Description: "Owning team"},
		schema.Field{Name: "environment", Type: schema.String(), Description: "Deployment environment (e.g. prod, staging)"},
	)

	scopeField           = schema.Field{Name: "scope", Type: ScopeShape, Description: "Service/team/environment filter"}
	limitField           = schema.Field{Name: "limit", Type: schema.PositiveInt(), Description: "Maximum number of results"}
	queryField           = schema.Field{Name: "query", Type: schema.String(), Description: "Free-text filter"}
	providerOptionsField = schema.Field{Name: "providerOptions", Type: schema.Map(), Description: "Provider-specific options passed through to Core"}
	idField              = schema.Field{Name: "id", Type: schema.NonEmptyString(), Required: true, Description: "Identifier"}
)

func stringList(name, desc string) schema.Field {
	return schema.Field{Name: name, Type: schema.Slice(schema.String()), Description: desc}
}

func timestamp(name, desc string, required bool) schema.Field {
	return schema.Field{Name: name, Type: schema.DateTime(), Required: required, Description: desc}
}

func text(name, desc string, required bool) schema.Field {
	t := schema.String()
	if required {
		t = schema.NonEmptyString()
	}
	return schema.Field{Name: name, Type: t, Required: required, Description: desc}
}

func object(desc string) OutputShape { return OutputShape{Kind: OutputObject, Description: desc} }
func array(desc string) OutputShape  { return OutputShape{Kind: OutputArray, Description: desc} }

// Read-only tools.
var (
	QueryIncidents = ToolContract{
		Name:        "query-incidents",
		Title:       "Query Incidents",
		Description: "Search incidents by scope, status and severity.",
		Method:      http.MethodPost,
		Path:        "/incidents/query",
		Input: schema.NewObject(
			scopeField,
			stringList("status", "Incident statuses (e.g. open, acknowledged, resolved)"),
			stringList("severity", "Severities (e.g. sev1, sev2)"),
			queryField,
			timestamp("since", "Only incidents opened at or after this time", false),
			limitField,
			providerOptionsField,
		),
		Output: array("Incident summaries"),
	}

	GetIncident = ToolContract{
		Name:        "get-incident",
		Title:       "Get Incident",
		Description: "Fetch one incident by identifier.",
		Method:      http.MethodGet,
		Path:        "/incidents/{id}",
		Input:       schema.NewObject(idField),
		Output:      object("Incident detail"),
	}

	GetIncidentTimeline = ToolContract{
		Name:        "get-incident-timeline",
		Title:       "Get Incident Timeline",
		Description: "Fetch the timeline entries of an incident.",
		Method:      http.MethodGet,
		Path:        "/incidents/{id}/timeline",
		Input:       schema.NewObject(idField),
		Output:      array("Timeline entries, oldest first"),
	}

	QueryAlerts = ToolContract{
		Name:        "query-alerts",
		Title:       "Query Alerts",
		Description: "Search alerts by scope, status and severity.",
		Method:      http.MethodPost,
		Path:        "/alerts/query",
		Input: schema.NewObject(
			scopeField,
			stringList("status", "Alert states (e.g. firing, resolved)"),
			stringList("severity", "Severities"),
			queryField,
			timestamp("start", "Range start", false),
			timestamp("end", "Range end", false),
			limitField,
			providerOptionsField,
		),
		Output: array("Alerts"),
	}

	QueryLogs = ToolContract{
		Name:        "query-logs",
		Title:       "Query Logs",
		Description: "Search log lines within a bounded time range.",
		Method:      http.MethodPost,
		Path:        "/logs/query",
		Input: schema.NewObject(
			scopeField,
			queryField,
			stringList("level", "Log levels (e.g. error, warn)"),
			timestamp("start", "Range start (ISO-8601)", true),
			timestamp("end", "Range end (ISO-8601)", true),
			limitField,
			providerOptionsField,
		),
		Output: object("Log lines and provider metadata"),
	}

	QueryMetrics = ToolContract{
		Name:        "query-metrics",
		Title:       "Query Metrics",
		Description: "Evaluate a metric query over a time range at a fixed step.",
		Method:      http.MethodPost,
		Path:        "/metrics/query",
		Input: schema.NewObject(
			scopeField,
			text("query", "Metric query expression", true),
			timestamp("start", "Range start (ISO-8601)", true),
			timestamp("end", "Range end (ISO-8601)", true),
			schema.Field{Name: "step", Type: schema.PositiveInt(), Required: true, Description: "Resolution step in seconds"},
			providerOptionsField,
		),
		Output: object("Series and provider metadata"),
	}

	DescribeMetrics = ToolContract{
		Name:        "describe-metrics",
		Title:       "Describe Metrics",
		Description: "List available metrics and their labels.",
		Method:      http.MethodPost,
		Path:        "/metrics/describe",
		Input: schema.NewObject(
			scopeField,
			queryField,
			stringList("names", "Exact metric names to describe"),
			limitField,
			providerOptionsField,
		),
		Output: array("Metric descriptors"),
	}

	QueryTickets = ToolContract{
		Name:        "query-tickets",
		Title:       "Query Tickets",
		Description: "Search tickets by scope, status and assignee.",
		Method:      http.MethodPost,
		Path:        "/tickets/query",
		Input: schema.NewObject(
			scopeField,
			stringList("status", "Ticket statuses"),
			queryField,
			text("assignee", "Assignee handle", false),
			limitField,
			providerOptionsField,
		),
		Output: array("Tickets"),
	}

	GetTicket = ToolContract{
		Name:        "get-ticket",
		Title:       "Get Ticket",
		Description: "Fetch one ticket by identifier.",
		Method:      http.MethodGet,
		Path:        "/tickets/{id}",
		Input:       schema.NewObject(idField),
		Output:      object("Ticket detail"),
	}

	QueryDeployments = ToolContract{
		Name:        "query-deployments",
		Title:       "Query Deployments",
		Description: "Search deployments by scope, status and time range.",
		Method:      http.MethodPost,
		Path:        "/deployments/query",
		Input: schema.NewObject(
			scopeField,
			stringList("status", "Deployment statuses (e.g. succeeded, failed, rolled_back)"),
			timestamp("start", "Range start", false),
			timestamp("end", "Range end", false),
			limitField,
			providerOptionsField,
		),
		Output: array("Deployments"),
	}

	GetDeployment = ToolContract{
		Name:        "get-deployment",
		Title:       "Get Deployment",
		Description: "Fetch one deployment by identifier.",
		Method:      http.MethodGet,
		Path:        "/deployments/{id}",
		Input:       schema.NewObject(idField),
		Output:      object("Deployment detail"),
	}

	QueryServices = ToolContract{
		Name:        "query-services",
		Title:       "Query Services",
		Description: "Search the service catalog.",
		Method:      http.MethodPost,
		Path:        "/services/query",
		Input: schema.NewObject(
			scopeField,
			queryField,
			limitField,
			providerOptionsField,
		),
		Output: array("Services"),
	}

	QueryTeams = ToolContract{
		Name:        "query-teams",
		Title:       "Query Teams",
		Description: "Search teams by name.",
		Method:      http.MethodPost,
		Path:        "/teams/query",
		Input: schema.NewObject(
			queryField,
			limitField,
		),
		Output: array("Teams"),
	}

	GetTeam = ToolContract{
		Name:        "get-team",
		Title:       "Get Team",
		Description: "Fetch one team by identifier.",
		Method:      http.MethodGet,
		Path:        "/teams/{id}",
		Input:       schema.NewObject(idField),
		Output:      object("Team detail"),
	}

	GetTeamMembers = ToolContract{
		Name:        "get-team-members",
		Title:       "Get Team Members",
		Description: "List the members of a team.",
		Method:      http.MethodGet,
		Path:        "/teams/{id}/members",
		Input:       schema.NewObject(idField),
		Output:      array("Team members"),
	}

	ListProviders = ToolContract{
		Name:        "list-providers",
		Title:       "List Providers",
		Description: "List the backend providers configured for a capability.",
		Method:      http.MethodGet,
		Path:        "/providers/{capability}",
		Input: schema.NewObject(
			schema.Field{Name: "capability", Type: schema.Enum(Capabilities...), Required: true, Description: "Capability to list providers for"},
		),
		Output: array("Providers"),
	}

	Health = ToolContract{
		Name:        "health",
		Title:       "Core Health",
		Description: "Report Core availability and provider status.",
		Method:      http.MethodGet,
		Path:        "/health",
		Input:       schema.NewObject(),
		Output:      object("Health report"),
	}
)

// Mutating tools, registered only when explicitly enabled.
var (
	CreateIncident = ToolContract{
		Name:        "create-incident",
		Title:       "Create Incident",
		Description: "Open a new incident.",
		Method:      http.MethodPost,
		Path:        "/incidents",
		Input: schema.NewObject(
			text("title", "Incident title", true),
			text("severity", "Severity (e.g. sev1)", true),
			text("summary", "Initial summary", false),
			scopeField,
			providerOptionsField,
		),
		Output:   object("Created incident"),
		Mutating: true,
	}

	UpdateIncident = ToolContract{
		Name:        "update-incident",
		Title:       "Update Incident",
		Description: "Change the status, severity or summary of an incident.",
		Method:      http.MethodPatch,
		Path:        "/incidents/{id}",
		Input: schema.NewObject(
			idField,
			text("status", "New status", false),
			text("severity", "New severity", false),
			text("summary", "New summary", false),
			providerOptionsField,
		),
		Output:   object("Updated incident"),
		Mutating: true,
	}

	AppendIncidentTimeline = ToolContract{
		Name:        "append-incident-timeline",
		Title:       "Append Incident Timeline",
		Description: "Add an entry to an incident timeline.",
		Method:      http.MethodPost,
		Path:        "/incidents/{id}/timeline",
		Input: schema.NewObject(
			idField,
			text("message", "Timeline entry text", true),
			timestamp("at", "Entry time; defaults to now on Core", false),
		),
		Output:   object("Created timeline entry"),
		Mutating: true,
	}

	CreateTicket = ToolContract{
		Name:        "create-ticket",
		Title:       "Create Ticket",
		Description: "Open a new ticket.",
		Method:      http.MethodPost,
		Path:        "/tickets",
		Input: schema.NewObject(
			text("title", "Ticket title", true),
			text("description", "Ticket body", false),
			text("assignee", "Assignee handle", false),
			stringList("labels", "Labels"),
			scopeField,
			providerOptionsField,
		),
		Output:   object("Created ticket"),
		Mutating: true,
	}

	UpdateTicket = ToolContract{
		Name:        "update-ticket",
		Title:       "Update Ticket",
		Description: "Change fields of a ticket.",
		Method:      http.MethodPatch,
		Path:        "/tickets/{id}",
		Input: schema.NewObject(
			idField,
			text("status", "New status", false),
			text("assignee", "New assignee", false),
			text("description", "New body", false),
			stringList("labels", "Replacement labels"),
			providerOptionsField,
		),
		Output:   object("Updated ticket"),
		Mutating: true,
	}

	SendMessage = ToolContract{
		Name:        "send-message",
		Title:       "Send Message",
		Description: "Post a message to a team channel through Core.",
		Method:      http.MethodPost,
		Path:        "/messages",
		Input: schema.NewObject(
			text("channel", "Destination channel", true),
			text("text", "Message text", true),
			text("incidentId", "Related incident", false),
		),
		Output:   object("Delivery receipt"),
		Mutating: true,
	}
)

// ReadOnly returns the read-only tools in registration order.
func ReadOnly() []ToolContract {
	return []ToolContract{
		QueryIncidents,
		GetIncident,
		GetIncidentTimeline,
		QueryAlerts,
		QueryLogs,
		QueryMetrics,
		DescribeMetrics,
		QueryTickets,
		GetTicket,
		QueryDeployments,
		GetDeployment,
		QueryServices,
		QueryTeams,
		GetTeam,
		GetTeamMembers,
		ListProviders,
		Health,
	}
}

// Mutations returns the mutating tools in registration order.
func Mutations() []ToolContract {
	return []ToolContract{
		CreateIncident,
		UpdateIncident,
		AppendIncidentTimeline,
		CreateTicket,
		UpdateTicket,
		SendMessage,
	}
}

// Defaults returns the tool set for a process, with mutations appended
// when enabled.
func Defaults(enableMutations bool) []ToolContract {
	tools := ReadOnly()
	if enableMutations {
		tools = append(tools, Mutations()...)
	}
	return tools
}
