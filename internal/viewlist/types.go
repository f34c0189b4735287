package viewlist

const (
	ModeIndex  = "index"
	ModeDeploy = "deploy"
)

const (
	IndexHeading   = "jflowmap demo applets"
	DefaultTitle   = IndexHeading
	DefaultJavaURL = "https://www.java.com/js/deployJava.js"
)

type View struct {
	Name      string     `json:"name" yaml:"name"`
	Desc      *string    `json:"desc,omitempty" yaml:"desc"`
	ViewConfs []ViewConf `json:"viewconfs" yaml:"viewconfs"`
}

type ViewConf struct {
	JFMV string  `json:"jfmv" yaml:"jfmv"`
	Name string  `json:"name" yaml:"name"`
	Desc *string `json:"desc,omitempty" yaml:"desc"`
}

type Page struct {
	Mode     string
	ViewConf string
	Body     string
}

type Catalog struct {
	Path   string
	Digest string
	Views  []View
}

func (c Catalog) ViewConfCount() int {
	n := 0
	for _, v := range c.Views {
		n += len(v.ViewConfs)
	}
	return n
}

type RenderConfig struct {
	CatalogPath   string
	Query         string
	Title         string
	DeployJavaURL string
	OutHTMLPath   string
	OutJSONPath   string
	ChecksumsPath string
	RunLogPath    string
}

type RenderResult struct {
	SchemaVersion string `json:"schema_version"`
	GeneratedAt   string `json:"generated_at"`
	Mode          string `json:"mode"`
	ViewConf      string `json:"viewconf,omitempty"`
	CatalogPath   string `json:"catalog_path"`
	CatalogDigest string `json:"catalog_sha256"`
	ViewCount     int    `json:"view_count"`
	ViewConfCount int    `json:"viewconf_count"`
	OutHTML       string `json:"out_html"`
}

// Text returns a present optional description.
func Text(s string) *string {
	return &s
}
