package tools

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"sora-video-mcp/pkg/sora"
)

// ToolDependencies holds everything a handler might need. The sora
// client is the only component that talks to the remote service; the
// image client fetches reference images on the handler's behalf.
type ToolDependencies struct {
	Client      *sora.Client
	ImageClient *http.Client
	Logger      *slog.Logger
	Wait        WaitFunc
}

// NewToolDispatcher builds a dispatcher with every tool contract bound
// to its handler.
func NewToolDispatcher(deps ToolDependencies) *Dispatcher {
	if deps.ImageClient == nil {
		deps.ImageClient = http.DefaultClient
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	d := NewDispatcher(deps.Logger)
	handlers := map[string]HandlerFunc{
		"create_video":            createVideoHandler(deps),
		"create_video_with_image": createVideoWithImageHandler(deps),
		"get_video_status":        getVideoStatusHandler(deps),
		"download_video":          downloadVideoHandler(deps),
		"list_videos":             listVideosHandler(deps),
		"delete_video":            deleteVideoHandler(deps),
		"remix_video":             remixVideoHandler(deps),
		"wait_for_video":          waitForVideoHandler(deps),
	}
	for _, config := range toolConfigs {
		d.Register(config, handlers[config.Name])
	}
	return d
}

func createVideoHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return deps.Client.CreateVideo(ctx, sora.CreateVideoRequest{
			Prompt:  stringArg(args, "prompt"),
			Model:   stringArg(args, "model"),
			Size:    stringArg(args, "size"),
			Seconds: stringArg(args, "seconds"),
		})
	}
}

func createVideoWithImageHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		ref, err := resolveImageInput(ctx, deps.ImageClient, stringArg(args, "image_url"), stringArg(args, "image_base64"))
		if err != nil {
			return nil, err
		}

		return deps.Client.CreateVideo(ctx, sora.CreateVideoRequest{
			Prompt:         stringArg(args, "prompt"),
			Model:          stringArg(args, "model"),
			Size:           stringArg(args, "size"),
			Seconds:        stringArg(args, "seconds"),
			InputReference: ref,
		})
	}
}

func getVideoStatusHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return deps.Client.GetVideo(ctx, stringArg(args, "video_id"))
	}
}

// DownloadInfo tells the caller how to fetch the finished content. The
// handler never downloads bytes itself; the bearer header is assumed
// mandatory for every variant.
type DownloadInfo struct {
	VideoID             string `json:"video_id"`
	Variant             string `json:"variant"`
	DownloadURL         string `json:"download_url"`
	AuthorizationHeader string `json:"authorization_header"`
	Command             string `json:"command"`
}

var variantExtensions = map[string]string{
	sora.VariantVideo:       "mp4",
	sora.VariantThumbnail:   "webp",
	sora.VariantSpritesheet: "jpg",
}

func downloadVideoHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		videoID := stringArg(args, "video_id")
		variant := stringArg(args, "variant")

		video, err := deps.Client.GetVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if video.Status != sora.StatusCompleted {
			return nil, &NotReadyError{VideoID: videoID, Status: video.Status}
		}

		downloadURL := deps.Client.ContentURL(videoID, variant)
		authHeader := deps.Client.BearerHeader()
		filename := videoID + "." + variantExtensions[variant]
		if variant != sora.VariantVideo {
			filename = videoID + "_" + variant + "." + variantExtensions[variant]
		}

		return &DownloadInfo{
			VideoID:             videoID,
			Variant:             variant,
			DownloadURL:         downloadURL,
			AuthorizationHeader: authHeader,
			Command:             fmt.Sprintf(`curl -L -H "Authorization: %s" -o %s "%s"`, authHeader, filename, downloadURL),
		}, nil
	}
}

func listVideosHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return deps.Client.ListVideos(ctx, sora.ListVideosParams{
			Limit: intArg(args, "limit"),
			Order: stringArg(args, "order"),
			After: stringArg(args, "after"),
		})
	}
}

func deleteVideoHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return deps.Client.DeleteVideo(ctx, stringArg(args, "video_id"))
	}
}

func remixVideoHandler(deps ToolDependencies) HandlerFunc {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return deps.Client.RemixVideo(ctx, stringArg(args, "video_id"), stringArg(args, "prompt"))
	}
}

func waitForVideoHandler(deps ToolDependencies) HandlerFunc {
	poller := NewPoller(deps.Client, deps.Wait, deps.Logger)
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		interval := time.Duration(intArg(args, "poll_interval_seconds")) * time.Second
		timeout := time.Duration(intArg(args, "timeout_seconds")) * time.Second
		return poller.Wait(ctx, stringArg(args, "video_id"), interval, timeout)
	}
}
