// Package islands implements partial hydration: a page is rendered on the
// server as static HTML, and only the registered island components in it
// are hydrated in the browser.
//
// On the server, Find locates islands in a page tree and stamps each
// island's root element with an id, its name and its JSON props.
// BootstrapScript then produces the module script that imports the client
// runtime and every island module and calls launch.
//
// On the client, Discover reads the stamped islands back from the live
// document and Launch hydrates each one with a mount.Root.
package islands
