package youtube

import (
	"context"
	"fmt"

	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/pkg/telemetry"
)

// enrichAuthors resolves every distinct author channel id across threads and
// replies to channel metadata and applies it in place. Channels the platform
// does not return stay at their zero value (nil country, nil subscribers).
func (in *Ingestor) enrichAuthors(ctx context.Context, threads []models.CommentThread) error {
	ctx, span := telemetry.StartSpan(ctx, "ingest.enrich_authors")
	defer span.End()

	ids := collectChannelIDs(threads)
	if len(ids) == 0 {
		return nil
	}

	meta := make(map[string]models.ChannelMeta, len(ids))
	for start := 0; start < len(ids); start += in.channelBatch {
		end := start + in.channelBatch
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := in.src.ChannelBatch(ctx, ids[start:end])
		if err != nil {
			return fmt.Errorf("resolve channel batch: %w", err)
		}
		for _, m := range batch {
			meta[m.ChannelID] = m
		}
	}

	applyChannelMeta(threads, meta)
	return nil
}

// collectChannelIDs dedupes author channel ids, preserving first-seen order
// and skipping authors with no channel id.
func collectChannelIDs(threads []models.CommentThread) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id *string) {
		if id == nil || *id == "" || seen[*id] {
			return
		}
		seen[*id] = true
		ids = append(ids, *id)
	}

	for i := range threads {
		add(threads[i].AuthorChannelID)
		for j := range threads[i].Replies {
			add(threads[i].Replies[j].AuthorChannelID)
		}
	}
	return ids
}

func applyChannelMeta(threads []models.CommentThread, meta map[string]models.ChannelMeta) {
	for i := range threads {
		t := &threads[i]
		if t.AuthorChannelID != nil {
			if m, ok := meta[*t.AuthorChannelID]; ok {
				t.AuthorCountry = m.Country
				t.SubscriberCount = m.SubscriberCount
			}
		}
		for j := range t.Replies {
			r := &t.Replies[j]
			if r.AuthorChannelID == nil {
				continue
			}
			if m, ok := meta[*r.AuthorChannelID]; ok {
				r.AuthorCountry = m.Country
				r.SubscriberCount = m.SubscriberCount
			}
		}
	}
}
