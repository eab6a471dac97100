package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed site.toml
var defaultSite string

// Site is the static hotel identity shown in the page chrome and on the
// policies page.
type Site struct {
	Name     string    `toml:"name"`
	Location string    `toml:"location"`
	Tagline  string    `toml:"tagline"`
	Hero     Hero      `toml:"hero"`
	Contact  Contact   `toml:"contact"`
	Nav      []NavLink `toml:"nav"`
	Policies Policies  `toml:"policies"`
	// MediaBase resolves store image references; it comes from Config.
	MediaBase string `toml:"-"`
}

type Hero struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
	CTALabel string `toml:"cta_label"`
	CTAHref  string `toml:"cta_href"`
}

type Contact struct {
	Address        []string `toml:"address"`
	Phone          string   `toml:"phone"`
	Email          string   `toml:"email"`
	FrontDeskHours string   `toml:"front_desk_hours"`
	CheckIn        string   `toml:"check_in"`
	CheckOut       string   `toml:"check_out"`
}

type NavLink struct {
	Label string `toml:"label"`
	Href  string `toml:"href"`
	Page  string `toml:"page"`
}

type Policies struct {
	Intro    string          `toml:"intro"`
	Sections []PolicySection `toml:"section"`
}

type PolicySection struct {
	Group      string   `toml:"group"`
	Title      string   `toml:"title"`
	Paragraphs []string `toml:"paragraphs"`
	Bullets    []string `toml:"bullets"`
	Facts      []Fact   `toml:"facts"`
}

type Fact struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
}

// PolicyGroup is a run of sections sharing a group heading.
type PolicyGroup struct {
	Name     string
	Sections []PolicySection
}

// Groups returns sections grouped by heading in first-appearance order.
func (p Policies) Groups() []PolicyGroup {
	var out []PolicyGroup
	index := map[string]int{}
	for _, s := range p.Sections {
		i, ok := index[s.Group]
		if !ok {
			i = len(out)
			index[s.Group] = i
			out = append(out, PolicyGroup{Name: s.Group})
		}
		out[i].Sections = append(out[i].Sections, s)
	}
	return out
}

// FullName is the hotel name with its location, as used in titles.
func (s *Site) FullName() string {
	if s.Location == "" {
		return s.Name
	}
	return s.Name + " " + s.Location
}

// LoadSite decodes the embedded profile and then, when path is set, the
// override file on top of it. Unknown keys are rejected.
func LoadSite(path string) (*Site, error) {
	var s Site
	md, err := toml.Decode(defaultSite, &s)
	if err != nil {
		return nil, fmt.Errorf("decode default site profile: %w", err)
	}
	if err := undecoded(md); err != nil {
		return nil, fmt.Errorf("default site profile: %w", err)
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &s)
		if err != nil {
			return nil, fmt.Errorf("decode site profile %s: %w", path, err)
		}
		if err := undecoded(md); err != nil {
			return nil, fmt.Errorf("site profile %s: %w", path, err)
		}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func undecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

func (s *Site) validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("site profile: name is required"))
	}
	if len(s.Nav) == 0 {
		errs = append(errs, errors.New("site profile: nav is empty"))
	}
	for i, n := range s.Nav {
		if n.Label == "" || !strings.HasPrefix(n.Href, "/") {
			errs = append(errs, fmt.Errorf("site profile: nav[%d] needs a label and an absolute href", i))
		}
	}
	return errors.Join(errs...)
}
