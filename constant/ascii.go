package constant

// AsciiArtLogo is rendered at the top of the root command help.
const AsciiArtLogo = `
     _                 __      _       _
 ___| |__   ___  _ __ / _| ___| |_ ___| |__
/ __| '_ \ / _ \| '_ \ |_ / _ \ __/ __| '_ \
\__ \ | | | (_) | |_) |  _|  __/ || (__| | | |
|___/_| |_|\___/| .__/|_|  \___|\__\___|_| |_|
                |_|`
