package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// defaultDocument is merged under every user document.
const defaultDocument = `{
  "fit": true,
  "filter": false,
  "vignette": true,
  "active-timeout": 15,
  "transition": "fade",
  "img": false,
  "content": {
    "clock": [{
      "format": "dddd, MMMM Do",
      "css": {"color": "white"},
      "parent-css": {
        "margin-top": "20vh",
        "text-align": "center",
        "font-weight": "bold"
      }
    }, {
      "format": ["h:mm", "A"],
      "css": [
        {"font-weight": 200},
        {"font-weight": "Regular", "margin-left": "1"}
      ],
      "parent-css": {
        "margin-top": "1",
        "color": "white",
        "text-align": "center"
      }
    }],
    "html": [{
      "html": "<text style='display: none' class='active-appear'>Press any key to login</text>",
      "css": {
        "margin-top": "5vh",
        "font-weight": "200",
        "text-align": "center",
        "color": "rgba(255, 255, 255, 0.8)"
      }
    }]
  }
}`

// Defaults returns a fresh copy of the built-in document tree.
func Defaults() *yaml.Node {
	root, err := Parse([]byte(defaultDocument))
	if err != nil {
		panic(fmt.Sprintf("document: built-in defaults do not parse: %v", err))
	}
	return root
}

// Default returns the normalised built-in document.
func Default() *Document {
	return Normalize(Defaults())
}
