// Package sampler fabricates shot charts. The season files carry no shot
// locations, so everything here is random and labelled synthetic; only the
// per-type counts and make rates follow the player's real averages.
package sampler
