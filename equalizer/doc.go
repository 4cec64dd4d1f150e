// SPDX-License-Identifier: EPL-2.0

// Package equalizer holds a positional gain table and applies it to PCM
// buffers.
//
// Bands are not frequency bands. Sample i of a buffer belongs to band
// i mod Bands(), and every sample of a band is multiplied by that band's
// gain. Products are truncated toward zero and saturated into the int16
// range, so a gain above 1.0 clips instead of wrapping around.
//
//	table, _ := equalizer.New(equalizer.DefaultBands)
//	_ = table.SetGain(2, 1.5)
//	table.Apply(buf.Samples)
//
// A GainTable is safe for concurrent use: Apply works on a snapshot taken
// under the table's lock, so a slider may keep moving while a buffer is
// being processed elsewhere.
package equalizer
