package soap

import (
	"encoding/xml"

	"github.com/dmitrijs2005/bookhub/internal/server/bookapi"
)

const (
	EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	BooksNS    = "http://www.isi.com/books"
	BanqueNS   = "http://www.isi.com/banque"
)

// bookInput holds the content fields as text so that empty elements mean
// absent and a bad price is a validation fault, not a parse fault.
type bookInput struct {
	Title           *string `xml:"title"`
	Price           *string `xml:"price"`
	Author          *string `xml:"author"`
	PublicationDate *string `xml:"publicationDate"`
}

type createBookRequest struct {
	bookInput
}

type updateBookRequest struct {
	ID string `xml:"id"`
	bookInput
}

type idRequest struct {
	ID string `xml:"id"`
}

type phoneRequest struct {
	Tel int64 `xml:"tel"`
}

type bookXML struct {
	ID              *int64   `xml:"id,omitempty"`
	Title           *string  `xml:"title,omitempty"`
	Price           *float64 `xml:"price,omitempty"`
	Author          *string  `xml:"author,omitempty"`
	PublicationDate *string  `xml:"publicationDate,omitempty"`
}

func toXML(v bookapi.View) *bookXML {
	return &bookXML{
		ID:              v.ID,
		Title:           v.Title,
		Price:           v.Price,
		Author:          v.Author,
		PublicationDate: v.PublicationDate,
	}
}

type createBookResponse struct {
	XMLName xml.Name `xml:"http://www.isi.com/books createBookResponse"`
	Book    *bookXML `xml:"book"`
}

type updateBookResponse struct {
	XMLName xml.Name `xml:"http://www.isi.com/books updateBookResponse"`
	Book    *bookXML `xml:"book"`
}

type getBookResponse struct {
	XMLName xml.Name `xml:"http://www.isi.com/books getBookResponse"`
	Book    *bookXML `xml:"book"`
}

type getAllBooksResponse struct {
	XMLName xml.Name   `xml:"http://www.isi.com/books getAllBooksResponse"`
	Books   []*bookXML `xml:"book"`
	Count   int        `xml:"count"`
}

type deleteBookResponse struct {
	XMLName xml.Name `xml:"http://www.isi.com/books deleteBookResponse"`
	Success bool     `xml:"success"`
	Message string   `xml:"message"`
}

type soldeResponse struct {
	XMLName xml.Name `xml:"http://www.isi.com/banque soldeResponse"`
	Solde   int64    `xml:"solde"`
}

type roleResponse struct {
	XMLName xml.Name `xml:"http://www.isi.com/banque roleResponse"`
	Role    string   `xml:"role"`
}

// Fault children are unqualified per SOAP 1.1.
type fault struct {
	XMLName xml.Name `xml:"soap:Fault"`
	Code    string   `xml:"faultcode"`
	String  string   `xml:"faultstring"`
}

const (
	faultClient = "soap:Client"
	faultServer = "soap:Server"
)
