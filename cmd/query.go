package cmd

import (
	"fmt"
	"strings"

	"github.com/tripfolio/cityscout/internal/city"
)

// ListCmd represents the list command
type ListCmd struct{}

func (l *ListCmd) Run() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cities, err := store.GetAll()
	if err != nil {
		return err
	}
	printCities(cities)
	return nil
}

// SearchCmd represents the search command
type SearchCmd struct {
	Substring string `arg:"" help:"Substring to match against name, country and tags"`
}

func (s *SearchCmd) Run() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	cities, err := store.Search(s.Substring)
	if err != nil {
		return err
	}
	printCities(cities)
	return nil
}

// ShowCmd represents the show command
type ShowCmd struct {
	ID string `arg:"" help:"City id"`
}

func (s *ShowCmd) Run() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	c, err := store.Get(s.ID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("no city with id %q", s.ID)
	}

	fmt.Printf("id:          %s\n", c.ID)
	fmt.Printf("name:        %s\n", c.Name)
	fmt.Printf("country:     %s\n", c.Country)
	if len(c.Tags) > 0 {
		fmt.Printf("tags:        %s\n", strings.Join(c.Tags, ", "))
	}
	if c.Summary != "" {
		fmt.Printf("summary:     %s\n", c.Summary)
	}
	if c.ImageURL != "" {
		fmt.Printf("image:       %s (%s)\n", c.ImageURL, c.ImageSource)
		fmt.Printf("thumbnail:   %s\n", c.ThumbnailURL)
	}
	if c.Attribution != "" {
		fmt.Printf("attribution: %s\n", c.Attribution)
	}
	if !c.UpdatedAt.IsZero() {
		fmt.Printf("updated:     %s\n", c.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// DeleteCmd represents the delete command
type DeleteCmd struct {
	ID string `arg:"" help:"City id"`
}

func (d *DeleteCmd) Run() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Delete(d.ID); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", d.ID)
	return nil
}

func printCities(cities []city.City) {
	if len(cities) == 0 {
		fmt.Println("no cities")
		return
	}
	for _, c := range cities {
		marker := " "
		if c.ImageURL != "" {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-20s %s\n", marker, c.ID, c.Name, c.Country)
	}
	fmt.Printf("%d cities (* = image resolved)\n", len(cities))
}
