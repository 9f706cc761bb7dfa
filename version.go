package tlq

// Version is the client library version, reported in the User-Agent
// header of every request.
const Version = "0.1.1"
