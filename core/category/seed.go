package category

import "github.com/pkgpulse/pkgpulse/schema"

// seedDefinitions lists the curated category catalog. MinMatches guards
// broad keyword sets against accidental single-keyword hits.
func seedDefinitions() []schema.CategoryDefinition {
	return []schema.CategoryDefinition{
		{
			ID:         "http-client",
			Name:       "HTTP Clients",
			Keywords:   []string{"http", "request", "fetch", "ajax", "xhr", "axios"},
			MinMatches: 1,
		},
		{
			ID:         "web-framework",
			Name:       "Web Frameworks",
			Keywords:   []string{"framework", "server", "express", "middleware", "router", "rest"},
			MinMatches: 2,
		},
		{
			ID:         "frontend-framework",
			Name:       "Frontend Frameworks",
			Keywords:   []string{"react", "vue", "svelte", "angular", "component", "ui-framework"},
			MinMatches: 1,
		},
		{
			ID:         "testing",
			Name:       "Testing",
			Keywords:   []string{"test", "testing", "assertion", "mock", "spec", "jest", "coverage"},
			MinMatches: 1,
		},
		{
			ID:         "state-management",
			Name:       "State Management",
			Keywords:   []string{"state", "store", "redux", "flux", "reactive", "observable"},
			MinMatches: 2,
		},
		{
			ID:         "date-time",
			Name:       "Date & Time",
			Keywords:   []string{"date", "time", "moment", "calendar", "timezone", "duration"},
			MinMatches: 1,
		},
		{
			ID:         "utility",
			Name:       "Utility Libraries",
			Keywords:   []string{"utility", "util", "helpers", "functional", "lodash", "toolkit"},
			MinMatches: 1,
		},
		{
			ID:         "validation",
			Name:       "Validation",
			Keywords:   []string{"validation", "validate", "schema", "sanitize", "assert"},
			MinMatches: 1,
		},
		{
			ID:         "bundler",
			Name:       "Bundlers & Build Tools",
			Keywords:   []string{"bundler", "build", "webpack", "rollup", "compiler", "transpile"},
			MinMatches: 2,
		},
		{
			ID:         "linting",
			Name:       "Linting & Formatting",
			Keywords:   []string{"lint", "linter", "eslint", "format", "prettier", "style-check"},
			MinMatches: 1,
		},
		{
			ID:         "orm-database",
			Name:       "ORMs & Database",
			Keywords:   []string{"orm", "database", "sql", "query", "postgres", "mysql", "sqlite", "migration"},
			MinMatches: 2,
		},
		{
			ID:         "styling",
			Name:       "CSS & Styling",
			Keywords:   []string{"css", "style", "styled", "sass", "tailwind", "postcss"},
			MinMatches: 1,
		},
		{
			ID:         "logging",
			Name:       "Logging",
			Keywords:   []string{"logging", "logger", "log", "winston", "debug"},
			MinMatches: 1,
		},
		{
			ID:         "cli",
			Name:       "CLI Tooling",
			Keywords:   []string{"cli", "command", "terminal", "argv", "prompt", "console"},
			MinMatches: 2,
		},
		{
			ID:         "animation",
			Name:       "Animation",
			Keywords:   []string{"animation", "animate", "transition", "tween", "motion"},
			MinMatches: 1,
		},
		{
			ID:         "charts",
			Name:       "Charts & Visualization",
			Keywords:   []string{"chart", "graph", "visualization", "d3", "plot", "dataviz"},
			MinMatches: 1,
		},
		{
			ID:         "markdown",
			Name:       "Markdown & Parsing",
			Keywords:   []string{"markdown", "parser", "md", "remark", "commonmark"},
			MinMatches: 1,
		},
		{
			ID:         "websocket",
			Name:       "WebSockets & Realtime",
			Keywords:   []string{"websocket", "socket", "realtime", "ws", "pubsub"},
			MinMatches: 1,
		},
		{
			ID:         "authentication",
			Name:       "Authentication",
			Keywords:   []string{"auth", "authentication", "jwt", "oauth", "session", "passport"},
			MinMatches: 1,
		},
		{
			ID:         "templating",
			Name:       "Templating",
			Keywords:   []string{"template", "templating", "handlebars", "ejs", "render"},
			MinMatches: 1,
		},
		{
			ID:         "forms",
			Name:       "Forms",
			Keywords:   []string{"form", "forms", "input", "form-validation", "field"},
			MinMatches: 2,
		},
		{
			ID:         "images",
			Name:       "Image Processing",
			Keywords:   []string{"image", "images", "resize", "crop", "svg", "sharp"},
			MinMatches: 1,
		},
		{
			ID:         "crypto",
			Name:       "Cryptography",
			Keywords:   []string{"crypto", "encryption", "hash", "cipher", "bcrypt"},
			MinMatches: 1,
		},
		{
			ID:         "i18n",
			Name:       "Internationalization",
			Keywords:   []string{"i18n", "internationalization", "locale", "translation", "l10n"},
			MinMatches: 1,
		},
		{
			ID:         "queue",
			Name:       "Queues & Jobs",
			Keywords:   []string{"queue", "job", "worker", "task", "scheduler", "cron"},
			MinMatches: 2,
		},
	}
}
