package web

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/feeds"
	"github.com/kigodev/kigo/db"
	"github.com/kigodev/kigo/domain"
	"github.com/kigodev/kigo/util"
)

// GetRSS renders the public haiku feed, optionally narrowed to a single
// author's pen name.
func GetRSS(database *db.DB, conf *util.AppConfig, username string) (string, error) {
	var posts []domain.Post
	var err error
	var title string
	var author string

	link := fmt.Sprintf("http://%s:%d/feed", conf.Conf.Host, conf.Conf.HttpPort)

	if username != "" {
		posts, err = database.ReadPostsByUsername(username)
		if err != nil || len(posts) == 0 {
			log.Println("Could not get haiku for", username, err)
			return "", errors.New("error retrieving haiku by username")
		}
		title = fmt.Sprintf("kigo — haiku by %s", username)
		author = username
		link = fmt.Sprintf("%s?username=%s", link, username)
	} else {
		posts, err = database.ReadAllPosts()
		if err != nil {
			log.Println("Could not get haiku!", err)
			return "", errors.New("error retrieving haiku")
		}
		title = "kigo — all haiku"
		author = "everyone"
	}

	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: "one haiku a day, every day",
		Author:      &feeds.Author{Name: author, Email: fmt.Sprintf("%s@kigo", author)},
		Created:     time.Now(),
	}

	var feedItems []*feeds.Item
	for _, post := range posts {
		feedItems = append(feedItems, feedItem(conf, post))
	}

	feed.Items = feedItems
	return feed.ToRss()
}

// GetRSSItem renders a single haiku as a one-item feed.
func GetRSSItem(database *db.DB, conf *util.AppConfig, id uuid.UUID) (string, error) {
	post, err := database.ReadPostById(id)
	if err != nil || post == nil {
		log.Println("Could not get haiku!", err)
		return "", errors.New("error retrieving haiku by id")
	}

	feed := &feeds.Feed{
		Title:       "kigo — a single haiku",
		Link:        &feeds.Link{Href: itemURL(conf, post.Id)},
		Description: "one haiku a day, every day",
		Author:      &feeds.Author{Name: post.AuthorName, Email: fmt.Sprintf("%s@kigo", post.AuthorName)},
		Created:     time.Now(),
	}

	feed.Items = []*feeds.Item{feedItem(conf, *post)}
	return feed.ToRss()
}

func feedItem(conf *util.AppConfig, post domain.Post) *feeds.Item {
	title := post.CreatedAt.Format(util.DateTimeFormat())
	if post.Location != "" {
		title = fmt.Sprintf("%s (%s)", title, post.Location)
	}
	return &feeds.Item{
		Id:      post.Id.String(),
		Title:   title,
		Link:    &feeds.Link{Href: itemURL(conf, post.Id)},
		Content: post.Haiku.String(),
		Author:  &feeds.Author{Name: post.AuthorName, Email: fmt.Sprintf("%s@kigo", post.AuthorName)},
		Created: post.CreatedAt,
	}
}

func itemURL(conf *util.AppConfig, id uuid.UUID) string {
	return fmt.Sprintf("http://%s:%d/feed/%s", conf.Conf.Host, conf.Conf.HttpPort, id)
}
