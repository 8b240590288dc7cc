//go:build debug

// Package debug provides a centralized, categorized debug logging system.
// Build with -tags debug to enable logging.
package debug

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Enabled indicates whether debug logging is active
const Enabled = true

// Category represents a debug logging category
type Category string

const (
	APP     Category = "APP"     // Orchestration, screen changes, dispatch
	TREE    Category = "TREE"    // Folder tree loading and expansion
	CATALOG Category = "CATALOG" // Image catalog lookups and fetches
	GALLERY Category = "GALLERY" // Pagination and column changes
	CANVAS  Category = "CANVAS"  // Mask editor strokes and exports
	IMAGE   Category = "IMAGE"   // Image fetch, decode, thumbnail cache
	STORE   Category = "STORE"   // Database operations, settings, export log
	UI      Category = "UI"      // UI events, layout, rendering
)

var (
	enabledCategories = map[Category]bool{
		APP:     true,
		TREE:    true,
		CATALOG: true,
		GALLERY: true,
		CANVAS:  true,
		IMAGE:   false, // one line per thumbnail, noisy
		STORE:   true,
		UI:      false,
	}
	categoryMu sync.RWMutex

	logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
)

func init() {
	// MASKR_DEBUG=APP,CANVAS or MASKR_DEBUG=all or MASKR_DEBUG=none
	if env := os.Getenv("MASKR_DEBUG"); env != "" {
		Configure(env)
	}
}

// Configure applies a comma separated category list, "all" or "none".
func Configure(list string) {
	categoryMu.Lock()
	defer categoryMu.Unlock()

	list = strings.ToUpper(strings.TrimSpace(list))
	switch list {
	case "":
		return
	case "ALL":
		for cat := range enabledCategories {
			enabledCategories[cat] = true
		}
	case "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(list, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	categoryMu.RLock()
	enabled := enabledCategories[cat]
	categoryMu.RUnlock()

	if !enabled {
		return
	}

	msg := fmt.Sprintf(format, args...)
	logger.Printf("[%s] %s", cat, msg)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// EnableAll enables all debug categories including verbose ones
func EnableAll() {
	categoryMu.Lock()
	for cat := range enabledCategories {
		enabledCategories[cat] = true
	}
	categoryMu.Unlock()
}

// ListEnabled returns the enabled categories in name order
func ListEnabled() []Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()

	var enabled []Category
	for cat, on := range enabledCategories {
		if on {
			enabled = append(enabled, cat)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i] < enabled[j] })
	return enabled
}
