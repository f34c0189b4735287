package viewlist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/valyala/fasttemplate"
)

const (
	AppletCode       = "jflowmap.JFlowMapApplet"
	AppletArchive    = "jflowmap.jar"
	AppletSize       = "100%"
	MinJavaVersion   = "1.6"
	viewConfigLayout = "viewconf/{{viewconf}}.jfmv"
)

var viewConfigTemplate = fasttemplate.New(viewConfigLayout, "{{", "}}")

// AppletAttrs is the fixed applet descriptor. Field order is the order the
// keys are emitted in.
type AppletAttrs struct {
	Code    string `json:"code"`
	Width   string `json:"width"`
	Height  string `json:"height"`
	Archive string `json:"archive"`
}

type AppletParams struct {
	ViewConfig     string `json:"viewConfig"`
	CodebaseLookup string `json:"codebase_lookup"`
	Image          string `json:"image"`
	BoxBgColor     string `json:"boxbgcolor"`
	BoxBorder      string `json:"boxborder"`
	CenterImage    string `json:"centerimage"`
}

type Deployment struct {
	Attrs      AppletAttrs
	Params     AppletParams
	MinVersion string
}

// Embedder places an applet deployment into the page being rendered.
type Embedder interface {
	RunApplet(w io.Writer, d Deployment) error
}

func ViewConfigPath(viewconf string) string {
	return viewConfigTemplate.ExecuteString(map[string]interface{}{"viewconf": viewconf})
}

func NewDeployment(viewconf string) Deployment {
	return Deployment{
		Attrs: AppletAttrs{
			Code:    AppletCode,
			Width:   AppletSize,
			Height:  AppletSize,
			Archive: AppletArchive,
		},
		Params: AppletParams{
			ViewConfig:     ViewConfigPath(viewconf),
			CodebaseLookup: ".",
			Image:          "resources/loading.gif",
			BoxBgColor:     "white",
			BoxBorder:      "false",
			CenterImage:    "true",
		},
		MinVersion: MinJavaVersion,
	}
}

// DeployJava emits a deployJava.runApplet call. The page must load
// deployJava.js before this script runs.
type DeployJava struct{}

func (DeployJava) RunApplet(w io.Writer, d Deployment) error {
	attrs, err := json.Marshal(d.Attrs)
	if err != nil {
		return fmt.Errorf("encode applet attributes: %w", err)
	}
	params, err := json.Marshal(d.Params)
	if err != nil {
		return fmt.Errorf("encode applet parameters: %w", err)
	}
	version, err := json.Marshal(d.MinVersion)
	if err != nil {
		return fmt.Errorf("encode applet version: %w", err)
	}
	_, err = fmt.Fprintf(w, "<script>deployJava.runApplet(%s, %s, %s);</script>", attrs, params, version)
	return err
}
