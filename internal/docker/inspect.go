package docker

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/rs/zerolog/log"
)

// ImageLabels retrieves all config labels from an image, pulling the image
// once when it is not available locally.
//
// The flow mirrors what a user would do by hand: inspect; if the image is
// unknown to the daemon, pull it and inspect again. Any failure at either
// stage — daemon unreachable, pull denied, image gone — degrades to a nil
// label map rather than an error: a label set we cannot read is treated
// the same as an image with no labels.
func (c *Client) ImageLabels(ctx context.Context, imageRef string) map[string]string {
	if labels, ok := c.inspectLabels(ctx, imageRef); ok {
		return labels
	}

	// Image not available locally — try pulling it once.
	log.Info().Str("image", imageRef).Msg("image not found locally, pulling")
	if err := c.pullImage(ctx, imageRef); err != nil {
		log.Warn().Err(err).Str("image", imageRef).Msg("image pull failed")
		return nil
	}

	labels, ok := c.inspectLabels(ctx, imageRef)
	if !ok {
		return nil
	}
	return labels
}

// inspectLabels performs a single image inspection and returns the config
// label map. The second return value reports whether the inspection
// succeeded; a successful inspection of an image without labels yields
// (nil, true).
func (c *Client) inspectLabels(ctx context.Context, imageRef string) (map[string]string, bool) {
	inspect, _, err := c.inner.ImageInspectWithRaw(ctx, imageRef)
	if err != nil {
		if !client.IsErrNotFound(err) {
			log.Debug().Err(err).Str("image", imageRef).Msg("image inspect failed")
		}
		return nil, false
	}
	if inspect.Config == nil {
		return nil, true
	}
	return inspect.Config.Labels, true
}

// pullImage pulls an image from its registry and waits for the pull to
// complete by draining the progress stream. The Docker API starts the
// pull on request and streams progress on the response body; the pull is
// only guaranteed finished once the stream is fully consumed.
func (c *Client) pullImage(ctx context.Context, imageRef string) error {
	reader, err := c.inner.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return err
	}
	defer reader.Close()

	if _, err := io.Copy(io.Discard, reader); err != nil {
		return err
	}

	log.Debug().Str("image", imageRef).Msg("image pull complete")
	return nil
}
