/*
Package core holds error handling shared by all packages of this module.

Errors carry a numeric code. Codes from 130 upwards classify failures at the
boundary to host applications: a host value of the wrong shape, a value out of
range, content that could not be parsed, a failing file or stream, or a
drawing that could not be composed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package core
