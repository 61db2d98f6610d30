/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package eyecandy formats user-facing messages that may carry emoji
// shortcodes, stripping them cleanly when emojis are disabled.
package eyecandy

import (
	"fmt"
	"regexp"

	"github.com/kyokomi/emoji/v2"
)

// shortcode matches :name: emoji codes; native unicode is left alone.
var shortcode = regexp.MustCompile(`:[a-zA-Z0-9-_+]+?:`)

// ESPrintf renders a format string, expanding or stripping emoji
// shortcodes.
func ESPrintf(emojisDisabled bool, format string, v ...interface{}) string {
	if emojisDisabled {
		return fmt.Sprintf(stripEmoji(format), v...)
	}
	return emoji.Sprintf(format, v...)
}

// ESPrint renders a plain string, expanding or stripping emoji
// shortcodes.
func ESPrint(emojisDisabled bool, s string) string {
	if emojisDisabled {
		return stripEmoji(s)
	}
	return emoji.Sprint(s)
}

func stripEmoji(s string) string {
	return shortcode.ReplaceAllString(s, "")
}
