package publisher

import (
	"bytes"
	"context"
	"time"

	comatproto "github.com/bluesky-social/indigo/api/atproto"
	appbsky "github.com/bluesky-social/indigo/api/bsky"
	lexutil "github.com/bluesky-social/indigo/lex/util"
	"github.com/bluesky-social/indigo/xrpc"
	"github.com/pkg/errors"

	"github.com/boardcast/boardcast/collector"
	"github.com/boardcast/boardcast/config"
	"github.com/boardcast/boardcast/formatter"
	"github.com/boardcast/boardcast/model"
	"github.com/boardcast/boardcast/preview"
	Logger "github.com/boardcast/boardcast/utils/log"
)

const blueskyTextLimit = 300

// BlueskyPublisher posts announcements as app.bsky.feed.post records. The
// hashtag is annotated as a clickable tag facet, and the thread link is
// attached as an external embed with OG metadata when available.
type BlueskyPublisher struct {
	xrpc     *xrpc.Client
	hashtag  string
	resolver preview.Resolver

	// image fetching for the embed thumbnail
	http             collector.Getter
	fallbackImageUrl string
}

// NewBlueskyPublisher creates an authenticated session against the
// configured PDS host.
func NewBlueskyPublisher(
	ctx context.Context,
	creds config.BlueskyCredentials,
	hashtag string,
	resolver preview.Resolver,
	httpClient collector.Getter,
	fallbackImageUrl string,
) (*BlueskyPublisher, error) {
	client := &xrpc.Client{Host: creds.Host}

	session, err := comatproto.ServerCreateSession(ctx, client, &comatproto.ServerCreateSession_Input{
		Identifier: creds.Handle,
		Password:   creds.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to create bluesky session")
	}
	client.Auth = &xrpc.AuthInfo{
		AccessJwt:  session.AccessJwt,
		RefreshJwt: session.RefreshJwt,
		Handle:     session.Handle,
		Did:        session.Did,
	}

	Logger.Log.Info("bluesky client initialized successfully")
	return &BlueskyPublisher{
		xrpc:             client,
		hashtag:          hashtag,
		resolver:         resolver,
		http:             httpClient,
		fallbackImageUrl: fallbackImageUrl,
	}, nil
}

func (p *BlueskyPublisher) Name() string {
	return "bluesky"
}

func (p *BlueskyPublisher) Publish(ctx context.Context, msg model.Message) error {
	text := formatter.FitWithSuffix(msg.Text, " #"+p.hashtag, blueskyTextLimit)

	post := &appbsky.FeedPost{
		LexiconTypeID: "app.bsky.feed.post",
		Text:          text,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Facets:        p.hashtagFacets(text),
		Embed:         p.buildEmbed(ctx, msg.SourceUrl),
	}

	_, err := comatproto.RepoCreateRecord(ctx, p.xrpc, &comatproto.RepoCreateRecord_Input{
		Collection: "app.bsky.feed.post",
		Repo:       p.xrpc.Auth.Did,
		Record:     &lexutil.LexiconTypeDecoder{Val: post},
	})
	if err != nil {
		return errors.Wrap(err, "fail to post on bluesky")
	}

	Logger.Log.Infof("posted on bluesky: %s", text)
	return nil
}

// hashtagFacets anchors the clickable tag to the hashtag's byte span in the
// final text. Must run after FitWithSuffix so the offsets are stable.
func (p *BlueskyPublisher) hashtagFacets(text string) []*appbsky.RichtextFacet {
	start, end, ok := HashtagByteSpan(text, p.hashtag)
	if !ok {
		return nil
	}
	return []*appbsky.RichtextFacet{
		{
			Index: &appbsky.RichtextFacet_ByteSlice{
				ByteStart: int64(start),
				ByteEnd:   int64(end),
			},
			Features: []*appbsky.RichtextFacet_Features_Elem{
				{
					RichtextFacet_Tag: &appbsky.RichtextFacet_Tag{Tag: p.hashtag},
				},
			},
		},
	}
}

// buildEmbed resolves OG metadata for the thread link and turns it into an
// external embed. An embed needs both title and description; anything that
// fails along the way just degrades to a text-only post.
func (p *BlueskyPublisher) buildEmbed(ctx context.Context, url string) *appbsky.FeedPost_Embed {
	meta, err := p.resolver.Resolve(url)
	if err != nil {
		Logger.Log.Warnf("fail to resolve og tags for %s: %v", url, err)
		return nil
	}
	if meta.Title == "" || meta.Description == "" {
		Logger.Log.Infof("page %s has no og title/description, posting without preview", url)
		return nil
	}

	return &appbsky.FeedPost_Embed{
		EmbedExternal: &appbsky.EmbedExternal{
			LexiconTypeID: "app.bsky.embed.external",
			External: &appbsky.EmbedExternal_External{
				Uri:         url,
				Title:       meta.Title,
				Description: meta.Description,
				Thumb:       p.uploadThumb(ctx, meta.ImageUrl),
			},
		},
	}
}

// fetchThumbData picks the thumbnail bytes: the OG image when it is
// reachable and within the size cap, the configured fallback image when the
// OG image is absent, oversized or unreachable. Returns nil when no
// thumbnail can be produced.
func (p *BlueskyPublisher) fetchThumbData(imageUrl string) []byte {
	if imageUrl != "" {
		data, err := preview.FetchImage(p.http, imageUrl)
		if err == nil {
			return data
		}
		Logger.Log.Warnf("fail to fetch og image %s, using fallback: %v", imageUrl, err)
	}

	if p.fallbackImageUrl == "" {
		return nil
	}
	data, err := preview.FetchImage(p.http, p.fallbackImageUrl)
	if err != nil {
		Logger.Log.Warnf("fail to fetch fallback image: %v", err)
		return nil
	}
	return data
}

// uploadThumb uploads the selected thumbnail as a blob. Returns nil when no
// thumbnail could be produced or the upload failed.
func (p *BlueskyPublisher) uploadThumb(ctx context.Context, imageUrl string) *lexutil.LexBlob {
	data := p.fetchThumbData(imageUrl)
	if data == nil {
		return nil
	}

	out, err := comatproto.RepoUploadBlob(ctx, p.xrpc, bytes.NewReader(data))
	if err != nil {
		Logger.Log.Warnf("fail to upload thumbnail blob: %v", err)
		return nil
	}
	return out.Blob
}
