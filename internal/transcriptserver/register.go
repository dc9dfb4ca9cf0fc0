// Package transcriptserver registers the transcript MCP tool.
package transcriptserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/sources"
)

// RegisterTools registers the youtube_transcript tool on the given MCP server.
func RegisterTools(server *mcp.Server) {
	registerTranscript(server)
}

func registerTranscript(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_transcript",
		Description: "Fetch the timed transcript of a YouTube video. Tries several client identities against the Innertube player API and falls back to watch-page extraction. Returns the segments with timestamps, the joined full text, the caption language, and whether the track was auto-generated.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.TranscriptInput) (*mcp.CallToolResult, *engine.TranscriptResult, error) {
		vid := strings.TrimSpace(input.VideoID)
		if vid == "" {
			vid = engine.ExtractVideoID(input.URL)
		}
		if !engine.ValidVideoID(vid) {
			return nil, nil, fmt.Errorf("url or a valid 11-character video_id is required")
		}

		engine.IncrTranscriptRequest()

		cascade := sources.NewCascade(input.Language)
		result, errs := cascade.Run(ctx, vid)
		if result == nil {
			return nil, nil, fmt.Errorf("no strategy produced a transcript: %s",
				strings.Join(engine.ErrorStrings(errs), "; "))
		}
		return nil, result, nil
	})
}
