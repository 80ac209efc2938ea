package links

// File is the native directory format:
//
//	links:
//	  - id: "1"
//	    title: GST Portal
//	    url: https://www.gst.gov.in
//	    category: Tax & Business
//	    description: ...
//	    keywords: [gst verify, tax return]
type File struct {
	Links []Entry `yaml:"links"`
}

// Entry is one link as authored in a directory file.
type Entry struct {
	ID          string   `yaml:"id,omitempty"`
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty"`
}

// ServicesConfig is a Homepage services.yaml. Group names become
// categories and service names become titles.
// Homepage uses dynamic keys, so we parse as []map[string][]map[string]ServiceProps
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps holds the Homepage service fields linkhub reads.
type ServiceProps struct {
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}

// Config is a parsed directory file in either format.
// Exactly one of Native and Homepage is set.
type Config struct {
	Native   *File
	Homepage ServicesConfig
}
