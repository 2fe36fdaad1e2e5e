/*
Package style defines styling properties and property patches.

Properties are raw string values, keyed by flat property names ("color",
"font-size", …). A Patch bundles a set of overrides; a PropertyMap is the
computed style annotation of a resolved node, cascading through enclosing
annotations down to the process-wide defaults. Length is the option type
for dimension-valued properties.

Rule and selector machinery lives in packages rules and sel, which build on
the types defined here.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2024 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style
