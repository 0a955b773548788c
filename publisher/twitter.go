package publisher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/pkg/errors"

	"github.com/boardcast/boardcast/config"
	"github.com/boardcast/boardcast/formatter"
	"github.com/boardcast/boardcast/model"
	Logger "github.com/boardcast/boardcast/utils/log"
)

// TODO: move to the v2 /2/tweets endpoint once the account is migrated off
// the legacy access tier.
const (
	twitterTextLimit = 280

	twitterStatusUpdateUrl      = "https://api.twitter.com/1.1/statuses/update.json"
	twitterVerifyCredentialsUrl = "https://api.twitter.com/1.1/account/verify_credentials.json"
)

// TwitterPublisher posts announcements through the statuses/update endpoint
// with OAuth1 user-context signing. Its suffix carries the hashtag and a
// see-more link back to the thread, since the microblog post has no rich
// link embed.
type TwitterPublisher struct {
	client  *http.Client
	hashtag string
}

// NewTwitterPublisher builds the signed client and verifies the credentials
// once. The caller decides whether a verification failure is fatal or just
// disables the platform for the run.
func NewTwitterPublisher(creds config.TwitterCredentials, hashtag string) (*TwitterPublisher, error) {
	conf := oauth1.NewConfig(creds.ApiKey, creds.ApiSecretKey)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	client := conf.Client(oauth1.NoContext, token)

	res, err := client.Get(twitterVerifyCredentialsUrl)
	if err != nil {
		return nil, errors.Wrap(err, "fail to verify twitter credentials")
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("twitter credential verification returned status %d", res.StatusCode)
	}

	Logger.Log.Info("twitter client initialized successfully")
	return &TwitterPublisher{client: client, hashtag: hashtag}, nil
}

func (p *TwitterPublisher) Name() string {
	return "twitter"
}

func (p *TwitterPublisher) Publish(ctx context.Context, msg model.Message) error {
	suffix := fmt.Sprintf(" #%s\n%s", p.hashtag, msg.SourceUrl)
	status := formatter.FitWithSuffix(msg.Text, suffix, twitterTextLimit)

	form := url.Values{}
	form.Set("status", status)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, twitterStatusUpdateUrl, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "fail to build tweet request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "fail to tweet")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return errors.Errorf("tweet rejected with status %d: %s", res.StatusCode, string(body))
	}

	Logger.Log.Infof("tweeted: %s", status)
	return nil
}
