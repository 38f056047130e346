package bootstrap

import (
	"fmt"
	"time"

	"github.com/kbukum/servicekit/di"
	"github.com/kbukum/servicekit/logger"
)

// ServiceStatus holds one registered factory's display row.
type ServiceStatus struct {
	Name      string
	Concrete  string
	Tag       string
	Singleton bool
	Supports  []string
}

// Summary tracks and displays the application assembly process.
type Summary struct {
	appName         string
	version         string
	startupDuration time.Duration
	notes           []string
}

// NewSummary creates a summary tracker.
func NewSummary(appName, version string) *Summary {
	return &Summary{appName: appName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// AddNote appends a free-form line to the summary output.
func (s *Summary) AddNote(note string) {
	s.notes = append(s.notes, note)
}

// Display prints the assembly summary: registered services with their
// lifetimes, providers, and cache state.
func (s *Summary) Display(registry *di.Registry, c *di.Container, log *logger.Logger) {
	services := collectServices(registry)
	providers := registry.Providers()

	fmt.Printf("\n")
	fmt.Printf("🚀 %s v%s started in %.2fs\n\n", s.appName, s.version, s.startupDuration.Seconds())

	if len(services) > 0 {
		fmt.Printf("📦 Services (%d)\n", len(services))
		for i, svc := range services {
			prefix := "├──"
			if i == len(services)-1 {
				prefix = "└──"
			}
			fmt.Printf("   %s %s %s: %s%s\n", prefix, lifetimeIcon(svc.Singleton), svc.Name, svc.Concrete, tagSuffix(svc.Tag))
			for j, iface := range svc.Supports {
				depPrefix := "│   ├──"
				if i == len(services)-1 {
					depPrefix = "    ├──"
				}
				if j == len(svc.Supports)-1 {
					if i == len(services)-1 {
						depPrefix = "    └──"
					} else {
						depPrefix = "│   └──"
					}
				}
				fmt.Printf("   %s 🔗 %s\n", depPrefix, iface)
			}
		}
		fmt.Printf("\n")
	} else {
		fmt.Printf("   └── No services registered\n\n")
	}

	if len(providers) > 0 {
		fmt.Printf("🧩 Providers (%d)\n", len(providers))
		for i, p := range providers {
			prefix := "├──"
			if i == len(providers)-1 {
				prefix = "└──"
			}
			fmt.Printf("   %s ✅ %s\n", prefix, di.TypeIDOf(p).String())
		}
		fmt.Printf("\n")
	}

	for _, note := range s.notes {
		fmt.Printf("   • %s\n", note)
	}

	if c != nil {
		log.Info("application assembled", map[string]interface{}{
			"services":  len(services),
			"providers": len(providers),
			"cached":    c.Cache().Len(),
		})
	}
}

// collectServices turns the registry's factories into display rows.
func collectServices(registry *di.Registry) []ServiceStatus {
	factories := registry.Factories()
	services := make([]ServiceStatus, 0, len(factories))
	for _, f := range factories {
		supports := make([]string, 0, len(f.Supports))
		for _, id := range f.Supports {
			supports = append(supports, di.Name(id))
		}
		services = append(services, ServiceStatus{
			Name:      di.Name(f.Concrete),
			Concrete:  f.Concrete.String(),
			Tag:       f.Tag,
			Singleton: f.Singleton,
			Supports:  supports,
		})
	}
	return services
}

func lifetimeIcon(singleton bool) string {
	if singleton {
		return "♻️"
	}
	return "⚡"
}

func tagSuffix(tag string) string {
	if tag == "" {
		return ""
	}
	return fmt.Sprintf(" [tag: %s]", tag)
}
