package contact_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/groupware-mcp/internal/groupware"
	"github.com/teemow/groupware-mcp/internal/instrumentation"
	"github.com/teemow/groupware-mcp/internal/normalize"
	"github.com/teemow/groupware-mcp/internal/server"
	"github.com/teemow/groupware-mcp/internal/tools"
	"github.com/teemow/groupware-mcp/internal/tools/common"
)

// RegisterContactTools registers the addressbook tools on the registry.
func RegisterContactTools(reg *tools.Registry, sc *server.ServerContext) error {
	createContactTool := mcp.NewTool("create_contact",
		mcp.WithDescription("Create an addressbook contact on the groupware server"),
		mcp.WithString("first_name",
			mcp.Required(),
			mcp.Description("Given name"),
		),
		mcp.WithString("last_name",
			mcp.Required(),
			mcp.Description("Family name"),
		),
		mcp.WithString("email",
			mcp.Description("Email address"),
		),
		mcp.WithString("phone",
			mcp.Description("Phone number"),
		),
		mcp.WithString("company",
			mcp.Description("Company or organization"),
		),
		mcp.WithString("title",
			mcp.Description("Job title"),
		),
		mcp.WithString("notes",
			mcp.Description("Free-form notes"),
		),
	)

	reg.Add(createContactTool, common.InstrumentedToolHandlerWithBackend(
		"create_contact", instrumentation.BackendAddressbook, instrumentation.OperationSave, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateContact(ctx, request, sc)
		}))

	searchContactsTool := mcp.NewTool("search_contacts",
		mcp.WithDescription("Search addressbook contacts by name, email or company"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text"),
		),
	)

	reg.Add(searchContactsTool, common.InstrumentedToolHandlerWithBackend(
		"search_contacts", instrumentation.BackendAddressbook, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchContacts(ctx, request, sc)
		}))

	return nil
}

type createContactArgs struct {
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
	Email     string `mapstructure:"email"`
	Phone     string `mapstructure:"phone"`
	Company   string `mapstructure:"company"`
	Title     string `mapstructure:"title"`
	Notes     string `mapstructure:"notes"`
}

func handleCreateContact(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args createContactArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.FirstName, "first_name"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.LastName, "last_name"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := sc.Gateway().SaveContact(ctx, groupware.ContactInput{
		FirstName: args.FirstName,
		LastName:  args.LastName,
		Email:     args.Email,
		Phone:     args.Phone,
		Company:   args.Company,
		Title:     args.Title,
		Notes:     args.Notes,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create contact: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Contact created successfully:\nName: %s %s\nEmail: %s\nPhone: %s\nCompany: %s\nID: %s",
		args.FirstName, args.LastName,
		normalize.OrPlaceholder(args.Email),
		normalize.OrPlaceholder(args.Phone),
		normalize.OrPlaceholder(args.Company),
		result.ID)), nil
}

type searchContactsArgs struct {
	Query string `mapstructure:"query"`
}

func handleSearchContacts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args searchContactsArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.Query, "query"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := sc.Gateway().SearchContacts(ctx, groupware.ContactQuery{Query: args.Query})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search contacts: %v", err)), nil
	}

	if len(records) == 0 {
		return mcp.NewToolResultText("No contacts found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d contact(s):\n", len(records))
	for _, rec := range records {
		contact := normalize.ToContact(rec)

		name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
		fmt.Fprintf(&b, "- %s (Email: %s, Phone: %s, Company: %s)\n",
			normalize.OrPlaceholder(name),
			normalize.OrPlaceholder(contact.Email),
			normalize.OrPlaceholder(contact.Phone),
			normalize.OrPlaceholder(contact.Company))
	}

	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}
