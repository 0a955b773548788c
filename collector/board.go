package collector

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/boardcast/boardcast/model"
)

// boardApiResponse mirrors the board's catalog feed. Each thread group lists
// its posts; only the opening post (posts[0]) is consulted.
type boardApiResponse struct {
	Threads []struct {
		Posts []boardApiPost `json:"posts"`
	} `json:"threads"`
}

type boardApiPost struct {
	No     int64  `json:"no"`
	Board  string `json:"board"`
	Sub    string `json:"sub"`
	Com    string `json:"com"`
	Time   int64  `json:"time"`
	Sticky int    `json:"sticky"`
	Locked int    `json:"locked"`
}

// BoardClient fetches the opening posts of all threads from the board's JSON
// feed. Any transport or payload error aborts the whole fetch; the caller
// treats that as "nothing to do this cycle".
type BoardClient struct {
	Http Getter
	Url  string
}

func NewBoardClient(client Getter, url string) *BoardClient {
	return &BoardClient{Http: client, Url: url}
}

func (c *BoardClient) FetchThreads() ([]model.Thread, error) {
	res, err := c.Http.Get(c.Url)
	if err != nil {
		return nil, errors.Wrap(err, "fail to fetch board feed")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("board feed returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "fail to read board feed body")
	}

	parsed := &boardApiResponse{}
	if err := json.Unmarshal(body, parsed); err != nil {
		return nil, errors.Wrap(err, "fail to parse board feed")
	}

	threads := []model.Thread{}
	for _, group := range parsed.Threads {
		if len(group.Posts) == 0 {
			return nil, errors.New("thread group with no posts in board feed")
		}
		op := group.Posts[0]
		if err := validatePost(op); err != nil {
			return nil, errors.Wrap(err, "invalid opening post in board feed")
		}
		threads = append(threads, model.Thread{
			Id:        op.No,
			Board:     op.Board,
			Subject:   op.Sub,
			BodyHtml:  op.Com,
			CreatedAt: op.Time,
			// the feed encodes these flags as 0/1
			Sticky: op.Sticky == 1,
			Locked: op.Locked == 1,
		})
	}
	return threads, nil
}

func validatePost(p boardApiPost) error {
	if p.No <= 0 {
		return errors.New("missing post number")
	}
	if p.Board == "" {
		return errors.New("missing board")
	}
	if p.Time <= 0 {
		return errors.New("missing creation time")
	}
	return nil
}
