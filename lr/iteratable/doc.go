/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorithms are often more straightforward
to describe as set constructions and operations. Sets keep their items in
insertion order, which makes constructions over sets deterministic.

Unusually, the set operations Union and Difference are destructive!

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
