// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Auth, analytics, payments and email detectors

package stacks

import (
	"github.com/sony-level/stackscan/internal/evidence"
)

// sourceMarker fires when the first existing file of rels contains one of needles
func sourceMarker(weight int, rels []string, needles ...string) signal {
	return func(p *evidence.Project, s *scorer) {
		for _, rel := range rels {
			if needle, ok := p.FileContains(rel, needles...); ok {
				s.add(weight, "%s references %s", rel, needle)
				return
			}
		}
	}
}

// authjsVariant tags next-auth v5 and later as Auth.js
func authjsVariant() signal {
	return func(p *evidence.Project, s *scorer) {
		if !s.fired() {
			return
		}
		if major, ok := evidence.MajorVersion(p.DependencyVersion("next-auth")); ok && major >= 5 {
			s.variant = "authjs"
		}
	}
}

var middlewareFiles = []string{"middleware.ts", "middleware.js", "src/middleware.ts", "src/middleware.js"}

// AuthDetectors returns the auth catalogue
func AuthDetectors() []Detector {
	return ranked(
		newTech(CategoryAuth, "Clerk", 0,
			depPrefix(70, "@clerk/"),
			secondary(sourceMarker(10, middlewareFiles, "clerkMiddleware", "authMiddleware")),
		),
		newTech(CategoryAuth, "NextAuth.js", 0,
			dep(70, "next-auth"),
			authjsVariant(),
			secondary(file(10, "auth.ts", "auth.config.ts", "src/auth.ts")),
		),
		newTech(CategoryAuth, "Auth.js", 0, dep(60, "@auth/core")),
		newTech(CategoryAuth, "Better Auth", 0, dep(70, "better-auth")),
		newTech(CategoryAuth, "Lucia", 0, dep(70, "lucia")),
		newTech(CategoryAuth, "Auth0", 0, depPrefix(70, "@auth0/")),
		newTech(CategoryAuth, "Supabase Auth", 0,
			dep(60, "@supabase/ssr", "@supabase/auth-helpers-nextjs"),
		),
		newTech(CategoryAuth, "Passport", 0, dep(60, "passport")),
	)
}

// AnalyticsDetectors returns the analytics and monitoring catalogue
func AnalyticsDetectors() []Detector {
	return ranked(
		newTech(CategoryAnalytics, "Vercel Analytics", 0,
			dep(70, "@vercel/analytics"),
			secondary(related(10, "@vercel/speed-insights")),
		),
		newTech(CategoryAnalytics, "PostHog", 0, dep(70, "posthog-js", "posthog-node")),
		newTech(CategoryAnalytics, "Google Analytics", 0,
			oneOf(dep(60, "react-ga4"), dep(40, "@next/third-parties")),
		),
		newTech(CategoryAnalytics, "Mixpanel", 0, dep(70, "mixpanel-browser", "mixpanel")),
		newTech(CategoryAnalytics, "Segment", 0, dep(70, "@segment/analytics-next", "@segment/analytics-node")),
		newTech(CategoryAnalytics, "Amplitude", 0, depPrefix(70, "@amplitude/")),
		newTech(CategoryAnalytics, "Plausible", 0, dep(60, "plausible-tracker", "next-plausible")),
		newTech(CategoryAnalytics, "Sentry", 0,
			depPrefix(60, "@sentry/"),
			secondary(config(20, "sentry.client.config", "sentry.server.config", "sentry.edge.config")),
		),
	)
}

// PaymentDetectors returns the payments catalogue
func PaymentDetectors() []Detector {
	return ranked(
		newTech(CategoryPayments, "Stripe", 0,
			dep(60, "stripe"),
			related(20, "@stripe/stripe-js"),
			related(10, "@stripe/react-stripe-js"),
		),
		newTech(CategoryPayments, "Lemon Squeezy", 0, depPrefix(70, "@lemonsqueezy/")),
		newTech(CategoryPayments, "Paddle", 0, depPrefix(70, "@paddle/")),
		newTech(CategoryPayments, "PayPal", 0, depPrefix(70, "@paypal/")),
		newTech(CategoryPayments, "Polar", 0, depPrefix(70, "@polar-sh/")),
	)
}

// EmailDetectors returns the email delivery catalogue
func EmailDetectors() []Detector {
	return ranked(
		newTech(CategoryEmail, "Resend", 0,
			dep(70, "resend"),
			secondary(relatedPrefix(10, "@react-email/")),
		),
		newTech(CategoryEmail, "SendGrid", 0, dep(70, "@sendgrid/mail")),
		newTech(CategoryEmail, "Postmark", 0, dep(70, "postmark")),
		newTech(CategoryEmail, "Amazon SES", 0, dep(70, "@aws-sdk/client-ses", "@aws-sdk/client-sesv2")),
		newTech(CategoryEmail, "Mailgun", 0, dep(70, "mailgun.js", "mailgun-js")),
		newTech(CategoryEmail, "Nodemailer", 0, dep(60, "nodemailer")),
		newTech(CategoryEmail, "React Email", 0, oneOf(dep(50, "react-email"), depPrefix(50, "@react-email/"))),
	)
}
