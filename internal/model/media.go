package model

import "fmt"

// Media is the closed set of renderable content shapes. Only the types in
// this package implement it.
type Media interface {
	media()
}

type Image struct {
	URL       string
	Thumbnail string
}

type Video struct {
	URL       string
	Thumbnail string
}

type Text struct {
	Title string
	Body  string
}

func (Image) media() {}
func (Video) media() {}
func (Text) media()  {}

func NewMedia(typ ContentType, title, url, thumbnail, body string) (Media, error) {
	switch typ {
	case ContentImage:
		return Image{URL: url, Thumbnail: thumbnail}, nil
	case ContentVideo:
		return Video{URL: url, Thumbnail: thumbnail}, nil
	case ContentText:
		return Text{Title: title, Body: body}, nil
	default:
		return nil, fmt.Errorf("unknown content type %q", typ)
	}
}
