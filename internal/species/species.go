package species

import (
	"net"
	"net/url"
	"path"
	"strconv"
)

// Species is a catalogued plant species. ImageFile holds the bare image
// filename (e.g. "quercus_robur.png"); full URLs are assembled on demand
// with ImageURL.
type Species struct {
	ID             int     `json:"species_id"`
	CommonName     *string `json:"common_name,omitempty"`
	ScientificName string  `json:"scientific_name"`
	Genus          *string `json:"genus,omitempty"`
	ImageFile      string  `json:"img_url"`
}

// CreateCommand carries the fields accepted when registering a new species.
type CreateCommand struct {
	CommonName     *string `json:"common_name"`
	ScientificName string  `json:"scientific_name" validate:"required"`
	Genus          *string `json:"genus"`
	ImageFile      string  `json:"img_url" validate:"required"`
}

// ImageURL builds the address a client can fetch a species image from.
// imgPath is the mount path of the image store (e.g. "/plant-images").
func ImageURL(host string, port int, imgPath, filename string) string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   path.Join("/", imgPath, filename),
	}
	return u.String()
}
