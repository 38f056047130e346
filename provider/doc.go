// Package provider orchestrates the boot lifecycle of registered service
// providers: every WillBoot hook completes before any DidBoot runs, and
// shutdownable providers wind down in reverse registration order.
package provider
