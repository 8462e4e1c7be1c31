// Package feed renders the RSS 2.0 podcast feed. Items carry CDATA-wrapped
// title, description, and content:encoded bodies; audio posts additionally
// get an enclosure and itunes author metadata. The feed is capped at the
// configured number of newest entries.
package feed
