package servers

const mathUtilsInstructions = `Math Utils - A complete suite of mathematical tools across arithmetic, continuous, discrete and statistical mathematics.

Basic arithmetic and operations:
- Fundamental arithmetic (add, subtract, multiply, divide, modulo, floor_divide)
- Power and root functions (pow, sqrt, isqrt)
- Rounding and truncation (round_to, ceil, floor, trunc, absolute)
- Array operations (minimum, maximum)
- Utility functions (sign, clamp, copysign, frexp, ldexp, modf)

Continuous mathematics:
- Trigonometric functions (sin, cos, tan, asin, acos, atan, atan2)
- Hyperbolic functions (sinh, cosh, tanh, asinh, acosh, atanh)
- Exponential and logarithmic functions (exp, expm1, log, log10, log2, log1p)
- Angle conversion (degrees, radians)
- Distance and geometry (hypot, multidimensional_hypot, dist)
- Special functions (gamma, lgamma, erf, erfc)

Discrete mathematics:
- Number theory (factorial, gcd, lcm)
- Combinatorics (combination, permutation)
- Integer square root (isqrt)

Statistical analysis:
- Central tendency (mean, geometric_mean, harmonic_mean, median variants, mode, multimode)
- Dispersion (variance, pvariance, stdev, pstdev)
- Distribution analysis (quantiles, median_grouped)
- Bivariate analysis (covariance, correlation, linear_regression)

Use this server for scientific computing, engineering calculations, data analysis, financial modeling and any other numeric problem solving.`

const arithmeticInstructions = `Arithmetic Math Utils - Tools for fundamental mathematical operations.

It includes:
- Basic arithmetic operations (add, subtract, multiply, divide, modulo, floor_divide)
- Power and root functions (pow, sqrt)
- Rounding and truncation (round_to, ceil, floor, trunc)
- Array operations (minimum, maximum, add for sums, multiply for products)
- Utility functions (absolute, sign, clamp)
- Floating-point operations (copysign, frexp, ldexp, modf)

All functions handle floating-point numbers and return appropriate numeric types.`

const continuousInstructions = `Continuous Math Utils - Tools for continuous mathematics calculations.

It includes:
- Trigonometric functions (sin, cos, tan, asin, acos, atan, atan2)
- Hyperbolic functions (sinh, cosh, tanh, asinh, acosh, atanh)
- Exponential and logarithmic functions (exp, expm1, log, log10, log2, log1p)
- Angle conversion utilities (degrees, radians)
- Distance and geometric functions (hypot, multidimensional_hypot, dist)
- Special mathematical functions (gamma, lgamma, erf, erfc)

All functions operate on floating-point numbers. Inputs outside a function's domain, and results that overflow, are reported as errors.`

const discreteInstructions = `Discrete Math Utils - Tools for discrete mathematics and combinatorics.

It includes:
- Integer arithmetic (isqrt - integer square root)
- Number theory functions (factorial, gcd, lcm)
- Combinatorial functions (combination, permutation)

All functions operate on integers and return exact integer results, however large.`

const statisticsInstructions = `Statistics Math Utils - Essential statistical functions for data analysis.

It includes:
- Measures of central tendency (mean, geometric_mean, harmonic_mean, median variants, mode, multimode)
- Measures of dispersion (variance, pvariance, stdev, pstdev)
- Distribution analysis (quantiles, median_grouped for grouped data)
- Bivariate analysis (covariance, correlation, linear_regression)

Population and sample statistics are both available (pvariance vs variance, pstdev vs stdev). harmonic_mean accepts optional weights. linear_regression returns [slope, intercept].

All functions operate on arrays of floating-point numbers.`

const datetimeInstructions = `DateTime Utils - Date, time and duration utilities.

Current time:
- epoch_seconds_now() - current Unix timestamp in seconds
- iso_utc_now() - current UTC time in ISO 8601 format

Format conversion:
- epoch_to_iso_utc(epoch_seconds) - Unix timestamp to ISO 8601 UTC string
- iso_utc_to_epoch(iso_utc) - ISO 8601 string to Unix timestamp
- is_valid_iso_format(iso_str) - validate an ISO 8601 datetime

Durations:
- duration_seconds(days, seconds, minutes, hours, weeks) - total seconds from components
- format_duration(seconds) - human-readable duration such as "1d 2h 30m 45s"

Calendar:
- isleap(year) - leap year check
- days_in_month(year, month) - number of days in a month

All operations use UTC. Timestamps without an offset are read as UTC.`

const randomInstructions = `Random Generator - Cryptographically secure random data generation.

It includes:
- generate_uuid - RFC 4122 version 4 UUID strings
- generate_random_number - integers within an inclusive range
- generate_random_text - alphanumeric strings of a given length

Use this server for tokens, identifiers, nonces, salts and test data. All values come from the operating system's secure random source.`

const textInstructions = `Text Utils - Text analysis, manipulation and encoding utilities.

Analysis and search:
- length (in Unicode code points)
- count_substr, first_index_of_substr, last_index_of_substr with optional start/end bounds
- most_common_words with frequency counts
- Case-insensitive matching by default, case_sensitive to opt out

Manipulation:
- normalize_text (case folding)
- slice_text
- replace_substr

Encoding and hashing:
- md5, sha1, sha256, sha512 hex digests
- base64 encode/decode (standard and URL-safe)
- hex encode/decode

All functions take and return UTF-8 strings.`
