package mail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/groupware-mcp/internal/groupware"
	"github.com/teemow/groupware-mcp/internal/instrumentation"
	"github.com/teemow/groupware-mcp/internal/server"
	"github.com/teemow/groupware-mcp/internal/tools"
	"github.com/teemow/groupware-mcp/internal/tools/common"
)

// RegisterMailTools registers the mail tools on the registry.
func RegisterMailTools(reg *tools.Registry, sc *server.ServerContext) error {
	sendEmailTool := mcp.NewTool("send_email",
		mcp.WithDescription("Send an email through the groupware server"),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Comma-separated recipient email addresses"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body text"),
		),
		mcp.WithString("cc",
			mcp.Description("Comma-separated CC addresses"),
		),
		mcp.WithString("bcc",
			mcp.Description("Comma-separated BCC addresses"),
		),
	)

	reg.Add(sendEmailTool, common.InstrumentedToolHandlerWithBackend(
		"send_email", instrumentation.BackendMail, instrumentation.OperationSend, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		}))

	return nil
}

type sendEmailArgs struct {
	To      string `mapstructure:"to"`
	Subject string `mapstructure:"subject"`
	Body    string `mapstructure:"body"`
	CC      string `mapstructure:"cc"`
	BCC     string `mapstructure:"bcc"`
}

func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	var args sendEmailArgs
	if err := common.DecodeArgs(request.GetArguments(), &args); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.To, "to"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.Subject, "subject"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := common.RequireString(args.Body, "body"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := groupware.EmailInput{
		To:      common.SplitList(args.To),
		CC:      common.SplitList(args.CC),
		BCC:     common.SplitList(args.BCC),
		Subject: args.Subject,
		Body:    args.Body,
	}

	if err := sc.Gateway().SendEmail(ctx, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Email sent successfully:\nTo: %s\nSubject: %s", strings.Join(input.To, ", "), args.Subject)
	if len(input.CC) > 0 {
		fmt.Fprintf(&b, "\nCC: %s", strings.Join(input.CC, ", "))
	}
	if len(input.BCC) > 0 {
		fmt.Fprintf(&b, "\nBCC: %s", strings.Join(input.BCC, ", "))
	}

	return mcp.NewToolResultText(b.String()), nil
}
